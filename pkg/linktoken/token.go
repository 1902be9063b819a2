package linktoken

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Action действие, на которое выдана ссылка
type Action string

const (
	ActionApprove Action = "approve"
	ActionDecline Action = "decline"
)

var (
	// ErrInvalidToken возвращается для поддельного, просроченного или чужого токена
	ErrInvalidToken = errors.New("linktoken: invalid token")

	// ErrEmptySecret возвращается при попытке создать подписчик без секрета
	ErrEmptySecret = errors.New("linktoken: empty secret")
)

// Claims полезная нагрузка токена ссылки
type Claims struct {
	Action Action `json:"act"`
	jwt.RegisteredClaims
}

// Signer выпускает и проверяет токены для ссылок подтверждения/отклонения заказа
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner создаёт подписчик с HMAC-секретом и временем жизни токена
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue выпускает токен для заказа и действия
func (s *Signer) Issue(orderID int64, action Action) (string, error) {
	now := s.now()
	claims := Claims{
		Action: action,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(orderID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("linktoken: sign: %w", err)
	}
	return token, nil
}

// Verify проверяет, что токен подписан нами, не просрочен и выдан на этот заказ и действие
func (s *Signer) Verify(token string, orderID int64, action Action) error {
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	parsed, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(s.now()) {
		return fmt.Errorf("%w: expired", ErrInvalidToken)
	}

	if claims.Subject != strconv.FormatInt(orderID, 10) || claims.Action != action {
		return fmt.Errorf("%w: token issued for another order or action", ErrInvalidToken)
	}

	return nil
}
