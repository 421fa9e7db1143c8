/*
 * Copyright 2018 The Trickster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"errors"
	"strings"

	"github.com/trickstercache/blueprint/pkg/engine"
	bctx "github.com/trickstercache/blueprint/pkg/proxy/context"
	"github.com/trickstercache/blueprint/pkg/router/blueprint"
)

var errMissingName = errors.New("missing name")

type user struct {
	Name string `json:"name"`
	Age  string `json:"age"`
}

// registerRoutes installs the demonstration routes
func registerRoutes(e *engine.Engine) error {
	users, err := blueprint.New("user", "/user")
	if err != nil {
		return err
	}
	if err := errors.Join(
		users.Get("/list", bctx.HandlerFunc(listUsers)),
		users.Post("/add", bctx.HandlerFunc(addUser)),
	); err != nil {
		return err
	}

	if err := errors.Join(
		e.Get("/", bctx.HandlerFunc(func(c *bctx.Context) {
			c.Text(200, "hello gua")
		})),
		e.Get("/json", bctx.HandlerFunc(func(c *bctx.Context) {
			c.JSON(200, user{Name: "bob", Age: "18"})
		})),
		e.Get("/html", bctx.HandlerFunc(func(c *bctx.Context) {
			c.HTML(200, "<h1>hello gua</h1>")
		})),
	); err != nil {
		return err
	}
	e.RegisterBlueprint(users)
	return nil
}

func listUsers(c *bctx.Context) {
	end := c.StartSpan("users.list")
	defer end(nil)
	c.JSON(200, []user{{Name: "bob", Age: "18"}, {Name: "alice", Age: "20"}})
}

// addUser takes the name from the query string, or else the request body
func addUser(c *bctx.Context) {
	end := c.StartSpan("users.add")
	name := c.Request.Args["name"]
	if name == "" {
		name = strings.TrimSpace(c.Request.Body)
	}
	if name == "" {
		end(errMissingName)
		c.Text(400, errMissingName.Error())
		return
	}
	end(nil)
	c.JSON(201, map[string]string{"added": name})
}
