package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels_AreDistinct(t *testing.T) {
	all := []error{
		ErrorNotFound, ErrEmailTaken, ErrorUnauthorized,
		ErrInvalidCredentials, ErrInvalidPassword, ErrInvalidToken, ErrTokenExpired,
	}
	for i := range all {
		for j := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(all[i], all[j]), "%v must not match %v", all[i], all[j])
		}
	}
}

func TestSentinels_SurviveWrapping(t *testing.T) {
	err := fmt.Errorf("db error: %w", ErrorNotFound)
	assert.ErrorIs(t, err, ErrorNotFound)
}
