package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_UnmarshalNumericID(t *testing.T) {
	var a Account
	require.NoError(t, json.Unmarshal([]byte(`{"id":42,"name":"Ana","email":"ana@calora.app","token":"x"}`), &a))
	assert.Equal(t, Account{ID: "42", Name: "Ana", Email: "ana@calora.app"}, a)
}

func TestAccount_UnmarshalStringID(t *testing.T) {
	var a Account
	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc","name":"Ana"}`), &a))
	assert.Equal(t, "abc", a.ID)
}

func TestAccount_UnmarshalRejectsObjectID(t *testing.T) {
	var a Account
	assert.Error(t, json.Unmarshal([]byte(`{"id":{"x":1}}`), &a))
}
