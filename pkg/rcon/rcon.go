// Package rcon provides the remote console client for the game server.
// Each call opens an authenticated session, sends exactly one command,
// reads one response and closes the session.
package rcon

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/gorcon/rcon"
)

// ErrUnreachable is the single failure outcome of the client. Connection,
// authentication and protocol errors all collapse into it; callers only
// need to know the command did not reach the server.
var ErrUnreachable = errors.New("consola remota inalcanzable")

// Executor is the capability consumed by the rest of the bot. It allows
// tests to substitute the real client with a fake.
type Executor interface {
	Execute(command string) (string, error)
}

// Client sends commands to the server console over RCON
type Client struct {
	addr     string
	password string
	timeout  time.Duration
}

// NewClient creates a new RCON client for the given host, port and password
func NewClient(host, port, password string) *Client {
	return &Client{
		addr:     net.JoinHostPort(host, port),
		password: password,
		timeout:  5 * time.Second,
	}
}

// Addr returns the remote console address
func (c *Client) Addr() string {
	return c.addr
}

// Execute opens a session, runs one command and closes the session.
// The session is short-lived on purpose: the bot sends commands at a
// human pace and the server drops idle RCON connections anyway.
func (c *Client) Execute(command string) (string, error) {
	conn, err := rcon.Dial(c.addr, c.password,
		rcon.SetDialTimeout(c.timeout),
		rcon.SetDeadline(c.timeout),
	)
	if err != nil {
		logger.Error(fmt.Sprintf("Error conectando a RCON %s: %v", c.addr, err), "RCON")
		return "", ErrUnreachable
	}
	defer conn.Close()

	resp, err := conn.Execute(command)
	if err != nil {
		logger.Error(fmt.Sprintf("Error ejecutando comando RCON: %v", err), "RCON")
		return "", ErrUnreachable
	}

	logger.Debug(fmt.Sprintf("RCON: %s -> %s", command, resp), "RCON")
	return resp, nil
}

// Ping checks whether the remote console accepts a session right now
func (c *Client) Ping() bool {
	conn, err := rcon.Dial(c.addr, c.password,
		rcon.SetDialTimeout(c.timeout),
		rcon.SetDeadline(c.timeout),
	)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
