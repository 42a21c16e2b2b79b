package whitelist

import (
	"errors"
	"sync"
	"testing"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/rcon"
)

// fakeConsole records commands and replays scripted responses
type fakeConsole struct {
	mu        sync.Mutex
	commands  []string
	responses map[string]string
	err       error
}

func (f *fakeConsole) Execute(command string) (string, error) {
	f.mu.Lock()
	f.commands = append(f.commands, command)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.responses[command], nil
}

func TestRemoteStoreAdd(t *testing.T) {
	console := &fakeConsole{responses: map[string]string{
		"whitelist add Steve123": "Added Steve123 to the whitelist",
	}}
	store := NewRemoteStore(console)

	result, err := store.Add("Steve123")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if result != ResultAdded {
		t.Errorf("Add() = %v, want ResultAdded", result)
	}
	if len(console.commands) != 1 || console.commands[0] != "whitelist add Steve123" {
		t.Errorf("comandos enviados = %v", console.commands)
	}
}

func TestRemoteStoreDuplicate(t *testing.T) {
	console := &fakeConsole{responses: map[string]string{
		"whitelist add Steve123": "Player is already whitelisted",
	}}
	store := NewRemoteStore(console)

	result, err := store.Add("Steve123")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if result != ResultDuplicate {
		t.Errorf("Add() = %v, want ResultDuplicate", result)
	}
}

func TestRemoteStoreUnreachable(t *testing.T) {
	console := &fakeConsole{err: rcon.ErrUnreachable}
	store := NewRemoteStore(console)

	_, err := store.Add("Steve123")
	if !errors.Is(err, rcon.ErrUnreachable) {
		t.Errorf("Add() error = %v, want ErrUnreachable", err)
	}
}

func TestClassifyAddResponse(t *testing.T) {
	tests := []struct {
		resp    string
		want    Result
		wantErr bool
	}{
		{"Added Steve123 to the whitelist", ResultAdded, false},
		{"added steve123 to the whitelist", ResultAdded, false},
		{"Player is already whitelisted", ResultDuplicate, false},
		{"That player does not exist", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.resp, func(t *testing.T) {
			got, err := classifyAddResponse(tt.resp)
			if tt.wantErr {
				if !errors.Is(err, rcon.ErrUnreachable) {
					t.Errorf("classifyAddResponse(%q) error = %v, want ErrUnreachable", tt.resp, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("classifyAddResponse(%q) error = %v", tt.resp, err)
			}
			if got != tt.want {
				t.Errorf("classifyAddResponse(%q) = %v, want %v", tt.resp, got, tt.want)
			}
		})
	}
}
