package postgres

import (
	"testing"
	"time"
)

func TestTxManager_SetStatementTimeout(t *testing.T) {
	m := &TxManager{defaults: DefaultTxOptions()}

	m.SetStatementTimeout(5 * time.Second)
	if m.defaults.StatementTimeout != 5*time.Second {
		t.Errorf("StatementTimeout = %v, want 5s", m.defaults.StatementTimeout)
	}

	// Zero keeps the previous value
	m.SetStatementTimeout(0)
	if m.defaults.StatementTimeout != 5*time.Second {
		t.Errorf("zero timeout must be ignored, got %v", m.defaults.StatementTimeout)
	}
}
