// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad
// Copyright (c) 2025 The mecom-go Authors

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/houlihaj/mecom-go/pkg/mecom"
	"github.com/houlihaj/mecom-go/pkg/tec"
)

// GetPassword retrieves password from environment or prompts user
func GetPassword() (string, error) {
	// First check environment variable
	if pw := os.Getenv("MECOM_PASSWORD"); pw != "" {
		return pw, nil
	}

	// Prompt user for password (hide input)
	fmt.Fprint(os.Stderr, "Password: ")

	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %v", err)
		}
		fmt.Fprintln(os.Stderr) // newline after password
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr) // newline after password
	return string(passwordBytes), nil
}

// openTransport opens either a serial or WebSocket transport based on flags
func openTransport() (mecom.Transport, string, error) {
	if wsURL != "" {
		// WebSocket mode
		password := ""
		if wsUsername != "" {
			var err error
			password, err = GetPassword()
			if err != nil {
				return nil, "", err
			}
		}

		t, err := mecom.OpenWebSocket(wsURL, mecom.WebSocketConfig{
			Username:      wsUsername,
			Password:      password,
			SkipTLSVerify: wsNoSSLVerify,
		})
		if err != nil {
			return nil, "", err
		}
		return t, fmt.Sprintf("WebSocket: %s", wsURL), nil
	}

	if portName != "" {
		// Serial mode
		t, err := mecom.OpenSerial(portName, baudRate, 0)
		if err != nil {
			return nil, "", err
		}
		return t, fmt.Sprintf("Serial: %s @ %d baud", portName, baudRate), nil
	}

	return nil, "", fmt.Errorf("either --port or --url must be specified")
}

// openDevice connects and wraps the device at the address flags
func openDevice() (*tec.Device, string, error) {
	t, desc, err := openTransport()
	if err != nil {
		return nil, "", err
	}
	conn := mecom.NewConnection(t, mecom.WithDefaultAddress(deviceAddress))
	dev := tec.New(conn,
		tec.WithAddress(deviceAddress),
		tec.WithChannel(deviceChannel),
	)
	return dev, desc, nil
}
