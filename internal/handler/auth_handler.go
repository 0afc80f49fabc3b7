package handler

import (
	"net/http"

	auth "storefront/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase // 会員登録usecase
	loginUC    *auth.LoginUsecase        // ログインusecase
}

// DIコンストラクタ
func NewAuthHandler(registerUC *auth.RegisterUserUsecase, loginUC *auth.LoginUsecase) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
	}
}

// /auth/register のリクエストボディ。
type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// /auth/login のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type loginUserDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    loginUserDTO `json:"user"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/auth/register", h.register)
	e.POST("/auth/login", h.login)
}

// registerはPOST /auth/registerのハンドラ
func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "All fields are required"})
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Email:     req.Email,
		Password:  req.Password,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
	})
	if err != nil {
		switch err {
		case auth.ErrMissingFields:
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "All fields are required"})
		case auth.ErrInvalidEmailFormat:
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid email format"})
		case auth.ErrPasswordTooShort:
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Password must be at least 8 characters"})
		case auth.ErrEmailAlreadyExists:
			return c.JSON(http.StatusConflict, ErrorResponse{Message: "Email already registered"})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Registration failed"})
		}
	}

	return c.JSON(http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		UserID:  out.UserID,
	})
}

// loginはPOST /auth/login のハンドラ。
func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Email and password are required"})
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch err {
		case auth.ErrMissingCredentials:
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Email and password are required"})
		case auth.ErrInvalidCredentials:
			//emailが未登録でもパスワード違いでも同じ応答
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid email or password"})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Login failed"})
		}
	}

	return c.JSON(http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   out.Token,
		User: loginUserDTO{
			ID:        out.User.ID,
			Email:     out.User.Email,
			Firstname: out.User.Firstname,
			Lastname:  out.User.Lastname,
		},
	})
}
