package pkg

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var errInvalidLength = errors.New("length must be positive")

const tokenHashCost = 12

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), tokenHashCost)
	return BytesToString(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
