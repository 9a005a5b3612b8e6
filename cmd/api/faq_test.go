package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bazabarbershop/baza/backend/internal/model/knowledge"
)

func TestFAQCommandPrintsTable(t *testing.T) {
	t.Setenv("KNOWLEDGE_FILE", "")
	envFile = "testdata-missing.env"
	faqFile = ""

	var out bytes.Buffer
	faqCmd.SetOut(&out)
	require.NoError(t, runFAQ(faqCmd, nil))

	var entries []knowledge.Entry
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &entries))
	assert.Equal(t, knowledge.Default().Entries(), entries)
}
