package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunRequiresCommand(t *testing.T) {
	assert.ErrorIs(t, runRun(runCmd, nil), ErrCommandRequired)
}

func TestRegisterRequiresTarball(t *testing.T) {
	assert.ErrorIs(t, runRegister(registerCmd, nil), ErrTarballRequired)
}

func TestRootHasCoreCommands(t *testing.T) {
	want := []string{"run", "shell", "list", "register", "unregister", "configure",
		"get", "conf", "cp", "install", "packages", "ip", "backup", "keepalive",
		"terminate", "version"}
	have := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, have[name], name)
	}
}
