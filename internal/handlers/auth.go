package handlers

import (
	"errors"
	"net/http"
	"time"

	"raspisanie/internal/models"
	"raspisanie/internal/response"
	"raspisanie/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	AccessSecret  []byte
	refreshSecret []byte
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

// SetSecrets задает ключи подписи токенов из конфигурации
func SetSecrets(access, refresh string) {
	AccessSecret = []byte(access)
	refreshSecret = []byte(refresh)
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// @Summary		Регистрация оператора
// @Description	Регистрация нового оператора расписания
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			user	body		RegisterRequest				true	"Данные оператора"
// @Success		201		{object}	response.SuccessResponse	"Успешная регистрация"
// @Failure		400		{object}	response.ErrorResponse		"Ошибка валидации (VALIDATION_ERROR) или оператор уже существует (EMAIL_EXISTS)"
// @Failure		500		{object}	response.ErrorResponse		"Ошибка сервера (PASSWORD_HASH_ERROR, DB_ERROR)"
// @Router			/auth/register [post]
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var existing models.Operator
	if err := storage.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "EMAIL_EXISTS",
			Message: "Оператор с таким email уже существует",
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "PASSWORD_HASH_ERROR",
			Message: "Ошибка при хешировании пароля",
		})
		return
	}

	operator := models.Operator{
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := storage.DB.Create(&operator).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "EMAIL_EXISTS",
				Message: "Оператор с таким email уже существует",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при создании оператора",
		})
		return
	}

	c.JSON(http.StatusCreated, response.SuccessResponse{
		Message: "Оператор успешно зарегистрирован",
	})
}

// @Summary		Авторизация оператора
// @Description	Авторизация оператора и получение токенов
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			user	body		LoginRequest			true	"Данные для авторизации"
// @Success		200		{object}	response.TokenResponse	"Успешная авторизация"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации данных (VALIDATION_ERROR)"
// @Failure		401		{object}	response.ErrorResponse	"Неверные учетные данные (INVALID_CREDENTIALS)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (TOKEN_GENERATION_ERROR)"
// @Router			/auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var operator models.Operator
	if err := storage.DB.Where("email = ?", req.Email).First(&operator).Error; err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "INVALID_CREDENTIALS",
			Message: "Неверный email или пароль",
		})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "INVALID_CREDENTIALS",
			Message: "Неверный email или пароль",
		})
		return
	}

	issueTokens(c, operator.ID)
}

// @Summary		Обновление access токена
// @Description	Обновление access токена с помощью refresh токена
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			refresh_token	body		RefreshTokenRequest		true	"Refresh токен"
// @Success		200				{object}	response.TokenResponse	"Успешное обновление access токена"
// @Failure		400				{object}	response.ErrorResponse	"Ошибка валидации данных (VALIDATION_ERROR)"
// @Failure		401				{object}	response.ErrorResponse	"Неверный или просроченный refresh токен (INVALID_REFRESH_TOKEN) или оператор не найден (USER_NOT_FOUND)"
// @Failure		500				{object}	response.ErrorResponse	"Ошибка сервера (TOKEN_GENERATION_ERROR)"
// @Router			/auth/refresh [post]
func RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	operatorID, err := ParseToken(req.RefreshToken, refreshSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "INVALID_REFRESH_TOKEN",
			Message: "Неверный или просроченный refresh токен",
		})
		return
	}

	var operator models.Operator
	if err := storage.DB.First(&operator, operatorID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{
			Code:    "USER_NOT_FOUND",
			Message: "Оператор не найден",
		})
		return
	}

	issueTokens(c, operator.ID)
}

func issueTokens(c *gin.Context, operatorID uint) {
	accessToken, err := generateToken(operatorID, accessTTL, AccessSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "TOKEN_GENERATION_ERROR",
			Message: "Ошибка при генерации access токена",
		})
		return
	}
	refreshToken, err := generateToken(operatorID, refreshTTL, refreshSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "TOKEN_GENERATION_ERROR",
			Message: "Ошибка при генерации refresh токена",
		})
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func generateToken(operatorID uint, duration time.Duration, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"user_id": operatorID,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

var errInvalidToken = errors.New("invalid token")

// ParseToken проверяет подпись и срок токена и возвращает id оператора
func ParseToken(tokenString string, secret []byte) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, errInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errInvalidToken
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, errInvalidToken
	}
	return uint(id), nil
}
