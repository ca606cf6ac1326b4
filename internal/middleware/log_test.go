package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuditActionMasksCredentialFields(t *testing.T) {
	body := []byte(`{"old_password":"Hunter2Hunter2","new_password":"NewSecret99"}`)

	action := auditAction("POST", "/api/profile/password", body)

	assert.NotContains(t, action, "Hunter2Hunter2")
	assert.NotContains(t, action, "NewSecret99")
	assert.Contains(t, action, `"old_password":"***"`)
	assert.Contains(t, action, `"new_password":"***"`)
	assert.True(t, strings.HasPrefix(action, "POST /api/profile/password"))
}

func TestAuditActionMasksEscapedQuotes(t *testing.T) {
	body := []byte(`{"password":"se\"cr\"et","shop_name":"Estética João"}`)

	action := auditAction("POST", "/api/auth/register", body)

	assert.NotContains(t, action, "cr\\\"et")
	assert.Contains(t, action, `"password":"***"`)
	// non-credential fields stay readable
	assert.Contains(t, action, "Estética João")
}

func TestAuditActionKeepsPlainBodies(t *testing.T) {
	body := []byte(`{"description":"Aluguel","value":"1500.00"}`)

	action := auditAction("POST", "/api/costs", body)

	assert.Equal(t, `POST /api/costs {"description":"Aluguel","value":"1500.00"}`, action)
}

func TestAuditActionSkipsLargeAndEmptyBodies(t *testing.T) {
	assert.Equal(t, "GET /api/payables", auditAction("GET", "/api/payables", nil))

	large := []byte("{" + strings.Repeat("x", 2100) + "}")
	assert.Equal(t, "POST /api/costs", auditAction("POST", "/api/costs", large))
}
