package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/daybook/internal"
	"github.com/yourname/daybook/internal/service"
)

func PostTodo(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var req service.TodoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: title required")
			return
		}

		if err := service.ValidateTodoRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Todo validation failed")
			return
		}

		todo, err := service.CreateTodo(c.Request.Context(), app.TodoRepo(), user, &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save todo")
			return
		}

		HandleSuccess(c, app.Logger(), todo, nil)
	}
}

func ListTodos(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		todos, err := app.TodoRepo().ListTodos(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch todos")
			return
		}

		HandleSuccess(c, app.Logger(), todos, nil)
	}
}

func PutTodo(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		id := c.Param("id")

		var req service.TodoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: title required")
			return
		}

		if err := service.ValidateTodoRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Todo validation failed")
			return
		}

		todo, err := service.UpdateTodo(c.Request.Context(), app.TodoRepo(), user, id, &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 404, "Todo not found")
			return
		}

		HandleSuccess(c, app.Logger(), todo, nil)
	}
}

func DeleteTodo(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		id := c.Param("id")

		if err := app.TodoRepo().DeleteTodo(c.Request.Context(), user.ID, id); err != nil {
			HandleError(c, app.Logger(), err, 404, "Todo not found")
			return
		}

		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": id})
	}
}
