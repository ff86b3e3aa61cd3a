// AngelaMos | 2026
// main_test.go

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/asset-portal/internal/auth"
	"github.com/carterperez-dev/asset-portal/internal/core"
)

type stubRegistrar struct {
	got auth.RegisterRequest
	err error
}

func (s *stubRegistrar) Register(_ context.Context, req auth.RegisterRequest) (*auth.ProfileResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &auth.ProfileResponse{Name: req.Name, Email: req.Email, EmployeeID: req.EmployeeID}, nil
}

func withPasswords(t *testing.T, answers ...string) {
	t.Helper()

	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(int) ([]byte, error) {
		if len(answers) == 0 {
			return nil, errors.New("no more input")
		}
		next := answers[0]
		answers = answers[1:]
		return []byte(next), nil
	}
}

func TestRegisterPromptsTwice(t *testing.T) {
	withPasswords(t, "s3cret", "s3cret")
	svc := &stubRegistrar{}
	var out bytes.Buffer

	err := register(context.Background(), svc, auth.RegisterRequest{
		Name: "Jane Doe", EmployeeID: "E100", Email: "jane@example.com",
	}, 0, &out)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", svc.got.Password)
	assert.Equal(t, "s3cret", svc.got.ConfirmPassword)
	assert.Contains(t, out.String(), "Password: ")
	assert.Contains(t, out.String(), "Confirm password: ")
	assert.Contains(t, out.String(), "registered Jane Doe (E100) as jane@example.com")
}

func TestRegisterDuplicate(t *testing.T) {
	withPasswords(t, "a", "a")
	svc := &stubRegistrar{err: fmt.Errorf("register: %w", core.ErrDuplicateKey)}

	err := register(context.Background(), svc, auth.RegisterRequest{}, 0, &bytes.Buffer{})
	require.ErrorIs(t, err, core.ErrDuplicateKey)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegisterReadFailure(t *testing.T) {
	withPasswords(t)

	err := register(context.Background(), &stubRegistrar{}, auth.RegisterRequest{}, 0, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read password")
}
