package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/alphabatem/common/context"

	"github.com/skillbites-ai/bites_api/dto"
)

type JWTService struct {
	context.DefaultService

	AccessTokenDuration time.Duration
	jwtSecretKey        string
}

type CustomClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

const JWT_SVC = "jwt_svc"

func (svc JWTService) Id() string {
	return JWT_SVC
}

func (svc *JWTService) Configure(ctx *context.Context) error {
	svc.AccessTokenDuration = time.Duration(24 * time.Hour)
	svc.jwtSecretKey = os.Getenv("JWT_OAUTH_SECRET")
	return svc.DefaultService.Configure(ctx)
}

func (svc *JWTService) Start() error {
	return nil
}

func (svc *JWTService) VerifyJWTToken(jwtToken string) (string, error) {
	token, err := jwt.ParseWithClaims(jwtToken, &CustomClaims{}, svc.getJWTKey)
	if err == nil && token.Valid {
		claims, ok := token.Claims.(*CustomClaims)
		if ok && claims != nil {
			expTime, err := claims.GetExpirationTime()
			if err != nil {
				return "", fmt.Errorf("failed to get expiration time: %v", err)
			}
			now := jwt.NewNumericDate(time.Now())
			if expTime.Unix() < now.Unix() {
				return "", errors.New("token has expired")
			}

			return claims.SessionID, nil
		}
	}

	return "", errors.New("unsupported JWT format")
}

func (svc *JWTService) getJWTKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}

	return []byte(svc.jwtSecretKey), nil
}

func (svc *JWTService) GenerateTokenPair(sessionID string) (*dto.TokenPair, error) {
	accessToken, err := svc.ToJWT(sessionID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken: accessToken,
		ExpiresIn:   int64(svc.AccessTokenDuration.Seconds()),
	}, nil
}

func (svc *JWTService) ToJWT(sessionID string) (string, error) {
	expTime := time.Now().Add(svc.AccessTokenDuration)

	claims := &CustomClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "SkillBites",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(svc.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %v", err)
	}

	return tokenString, nil
}

func (svc *JWTService) ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is missing")
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return "", errors.New("invalid authorization header format")
	}

	return authHeader[7:], nil
}
