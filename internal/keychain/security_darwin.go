// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

//go:build darwin

package keychain

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// securityBackend stores secrets through the macOS security command.
// Items are generic passwords with account ServiceName and service key.
type securityBackend struct{}

// newSecurityBackend fails when the security command is unavailable.
func newSecurityBackend() (*securityBackend, error) {
	if _, err := exec.LookPath("security"); err != nil {
		return nil, fmt.Errorf("security command not found: %w", err)
	}
	return &securityBackend{}, nil
}

func (s *securityBackend) Set(key, value string) error {
	// -U updates an existing item in place
	_, stderr, err := runSecurity("add-generic-password", "-a", ServiceName, "-s", key, "-w", value, "-U")
	if err != nil {
		return fmt.Errorf("failed to store %q in keychain: %s: %w", key, stderr, err)
	}
	return nil
}

func (s *securityBackend) Get(key string) (string, error) {
	stdout, stderr, err := runSecurity("find-generic-password", "-a", ServiceName, "-s", key, "-w")
	if err != nil {
		if notFound(stderr) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read %q from keychain: %s: %w", key, stderr, err)
	}
	return strings.TrimSpace(stdout), nil
}

func (s *securityBackend) Delete(key string) error {
	_, stderr, err := runSecurity("delete-generic-password", "-a", ServiceName, "-s", key)
	if err != nil {
		if notFound(stderr) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %q from keychain: %s: %w", key, stderr, err)
	}
	return nil
}

func runSecurity(args ...string) (string, string, error) {
	cmd := exec.Command("security", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func notFound(stderr string) bool {
	return strings.Contains(stderr, "could not be found")
}
