package rcon

import (
	"errors"
	"testing"
	"time"
)

func TestNewClientAddr(t *testing.T) {
	c := NewClient("mc.example.com", "25575", "secret")
	if c.Addr() != "mc.example.com:25575" {
		t.Errorf("Addr() = %v, want %v", c.Addr(), "mc.example.com:25575")
	}
}

func TestExecuteCollapsesDialErrors(t *testing.T) {
	// Port 0 is never dialable; any dial failure must surface as ErrUnreachable
	c := NewClient("127.0.0.1", "0", "secret")
	c.timeout = 500 * time.Millisecond

	_, err := c.Execute("whitelist add Steve123")
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("Execute() error = %v, want ErrUnreachable", err)
	}
}

func TestPingUnreachable(t *testing.T) {
	c := NewClient("127.0.0.1", "0", "secret")
	c.timeout = 500 * time.Millisecond

	if c.Ping() {
		t.Error("Ping() should report false for an unreachable console")
	}
}
