// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

package graph

import (
	"github.com/graphql-go/graphql"
	"github.com/samber/oops"
)

// NewSchema builds the executable GraphQL schema around the resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	messageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Message",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"from":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"to":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"content":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"username":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":         &graphql.Field{Type: graphql.String},
			"imageUrl":      &graphql.Field{Type: graphql.String},
			"token":         &graphql.Field{Type: graphql.String},
			"createdAt":     &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"latestMessage": &graphql.Field{Type: messageType},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getUsers": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Resolve: r.resolveGetUsers,
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveLogin,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"username":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":           &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"confirmPassword": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveRegister,
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
	if err != nil {
		return graphql.Schema{}, oops.Code("GRAPH_SCHEMA_INVALID").Wrap(err)
	}
	return schema, nil
}
