package user

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

type signupRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Username    string  `json:"username"`
	PhoneNumber *string `json:"phone_number"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Username    string  `json:"username"`
	PhoneNumber *string `json:"phone_number"`
	Email       string  `json:"email"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/signup", h.signup)
	app.Post("/login", h.login)
	app.Get("/users", h.listUsers)
	app.Get("/users/:id", h.getUser)
	app.Put("/users/:id", h.updateUser)
	app.Delete("/users/:id", h.deleteUser)
}

// Failures are returned to the app-level error handler rather than
// formatted inline, so every error path shares one envelope shape.

func (h *Handler) signup(c *fiber.Ctx) error {
	payload := new(signupRequest)
	if err := c.BodyParser(payload); err != nil {
		return &ValidationError{Field: "body", Message: "request body must be valid JSON"}
	}

	created, err := h.service.Signup(SignupInput{
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Username:    payload.Username,
		PhoneNumber: payload.PhoneNumber,
		Email:       payload.Email,
		Password:    payload.Password,
	})
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, "User created successfully", created)
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return &ValidationError{Field: "body", Message: "request body must be valid JSON"}
	}

	identity, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, "Login successful", identity)
}

func (h *Handler) listUsers(c *fiber.Ctx) error {
	users, err := h.service.List()
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, "Users fetched successfully", users)
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetByID(id)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, "User fetched successfully", user)
}

func (h *Handler) updateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	payload := new(updateRequest)
	if err := c.BodyParser(payload); err != nil {
		return &ValidationError{Field: "body", Message: "request body must be valid JSON"}
	}

	updated, err := h.service.Update(id, UpdateInput{
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Username:    payload.Username,
		PhoneNumber: payload.PhoneNumber,
		Email:       payload.Email,
	})
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, "User updated successfully", updated)
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	deleted, err := h.service.Delete(id)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, "User deleted successfully", deleted)
}

func parseID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, &ValidationError{Field: "id", Message: "id must be an integer"}
	}
	return id, nil
}

// respond writes the uniform {status, message, data} envelope.
func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}
