package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lojasocial/internal/domain"
	apperror "lojasocial/internal/errors"
)

func TestRequest_Accept_FromNew(t *testing.T) {
	r := domain.Request{Status: domain.RequestNew}

	require.NoError(t, r.Accept())
	assert.Equal(t, domain.RequestInProgress, r.Status)
	assert.Empty(t, r.RefusalReason)
}

func TestRequest_Refuse_FromNew(t *testing.T) {
	r := domain.Request{Status: domain.RequestNew}

	require.NoError(t, r.Refuse("  sem documentação  "))
	assert.Equal(t, domain.RequestRefused, r.Status)
	assert.Equal(t, "sem documentação", r.RefusalReason)
}

func TestRequest_Refuse_EmptyReason(t *testing.T) {
	r := domain.Request{Status: domain.RequestNew}

	err := r.Refuse("   ")

	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Equal(t, domain.RequestNew, r.Status)
	assert.Empty(t, r.RefusalReason)
}

func TestRequest_StaffTransitions_OnlyFromNew(t *testing.T) {
	for _, from := range []domain.RequestStatus{domain.RequestInProgress, domain.RequestDone, domain.RequestRefused} {
		t.Run(string(from), func(t *testing.T) {
			r := domain.Request{Status: from}
			err := r.Accept()
			assert.IsType(t, &apperror.InvalidTransitionError{}, err)
			assert.Equal(t, from, r.Status)

			err = r.Refuse("motivo")
			assert.IsType(t, &apperror.InvalidTransitionError{}, err)
			assert.Equal(t, from, r.Status)
			assert.Empty(t, r.RefusalReason)
		})
	}
}

func TestRequest_Complete(t *testing.T) {
	r := domain.Request{Status: domain.RequestInProgress}
	require.NoError(t, r.Complete())
	assert.Equal(t, domain.RequestDone, r.Status)

	fresh := domain.Request{Status: domain.RequestNew}
	assert.Error(t, fresh.Complete())
	assert.Equal(t, domain.RequestNew, fresh.Status)
}

func TestRequestStatus_LegacyValues(t *testing.T) {
	var r domain.Request
	require.NoError(t, json.Unmarshal([]byte(`{"estado":"PRONTO"}`), &r))
	assert.Equal(t, domain.RequestInProgress, r.Status)

	require.NoError(t, json.Unmarshal([]byte(`{"estado":"ENTREGUE"}`), &r))
	assert.Equal(t, domain.RequestDone, r.Status)

	assert.Error(t, json.Unmarshal([]byte(`{"estado":"ARQUIVADO"}`), &r))
}

func TestRequestStatus_Terminal(t *testing.T) {
	assert.False(t, domain.RequestNew.IsTerminal())
	assert.False(t, domain.RequestInProgress.IsTerminal())
	assert.True(t, domain.RequestDone.IsTerminal())
	assert.True(t, domain.RequestRefused.IsTerminal())
}
