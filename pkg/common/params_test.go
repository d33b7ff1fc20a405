package common

import (
	"reflect"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"
)

var testParamsConfig = map[string]Parameter{
	"name": {
		Name:       "name",
		ShortName:  "n",
		EnvVarName: "PARAMS_TEST_NAME",
		TypeKind:   reflect.String,
		Usage:      "a required string parameter",
		Required:   true,
	},
	"count": {
		Name:         "count",
		ShortName:    "c",
		EnvVarName:   "PARAMS_TEST_COUNT",
		TypeKind:     reflect.Int,
		DefaultValue: 3,
		Usage:        "an int parameter with a default",
	},
	"labels": {
		Name:       "labels",
		ShortName:  "l",
		EnvVarName: "PARAMS_TEST_LABELS",
		TypeKind:   reflect.Array,
		Usage:      "an array parameter",
	},
}

type testParams struct {
	Name   string   `paramName:"name"`
	Count  int      `paramName:"count"`
	Labels []string `paramName:"labels"`
}

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test", Run: func(cmd *cobra.Command, args []string) {}}
	RegisterParameters(cmd, testParamsConfig)
	return cmd
}

func TestParseParameters(t *testing.T) {
	g := NewWithT(t)

	t.Run("takes values from flags", func(t *testing.T) {
		cmd := newTestCommand()
		cmd.SetArgs([]string{"--name", "john", "--count", "5", "--labels", "a", "--labels", "b"})
		g.Expect(cmd.Execute()).To(Succeed())

		params := testParams{}
		g.Expect(ParseParameters(cmd, testParamsConfig, &params)).To(Succeed())
		g.Expect(params.Name).To(Equal("john"))
		g.Expect(params.Count).To(Equal(5))
		g.Expect(params.Labels).To(Equal([]string{"a", "b"}))
	})

	t.Run("falls back to env vars", func(t *testing.T) {
		t.Setenv("PARAMS_TEST_NAME", "from-env")
		t.Setenv("PARAMS_TEST_COUNT", "9")
		t.Setenv("PARAMS_TEST_LABELS", "x,y z")

		cmd := newTestCommand()
		cmd.SetArgs([]string{})
		g.Expect(cmd.Execute()).To(Succeed())

		params := testParams{}
		g.Expect(ParseParameters(cmd, testParamsConfig, &params)).To(Succeed())
		g.Expect(params.Name).To(Equal("from-env"))
		g.Expect(params.Count).To(Equal(9))
		g.Expect(params.Labels).To(Equal([]string{"x", "y", "z"}))
	})

	t.Run("flags take precedence over env vars", func(t *testing.T) {
		t.Setenv("PARAMS_TEST_NAME", "from-env")

		cmd := newTestCommand()
		cmd.SetArgs([]string{"--name", "from-flag"})
		g.Expect(cmd.Execute()).To(Succeed())

		params := testParams{}
		g.Expect(ParseParameters(cmd, testParamsConfig, &params)).To(Succeed())
		g.Expect(params.Name).To(Equal("from-flag"))
	})

	t.Run("applies defaults when nothing is given", func(t *testing.T) {
		t.Setenv("PARAMS_TEST_NAME", "whatever")

		cmd := newTestCommand()
		cmd.SetArgs([]string{})
		g.Expect(cmd.Execute()).To(Succeed())

		params := testParams{}
		g.Expect(ParseParameters(cmd, testParamsConfig, &params)).To(Succeed())
		g.Expect(params.Count).To(Equal(3))
		g.Expect(params.Labels).To(BeNil())
	})

	t.Run("fails on missing required parameter", func(t *testing.T) {
		cmd := newTestCommand()
		cmd.SetArgs([]string{})
		g.Expect(cmd.Execute()).To(Succeed())

		params := testParams{}
		err := ParseParameters(cmd, testParamsConfig, &params)
		g.Expect(err).To(HaveOccurred())
		g.Expect(err.Error()).To(ContainSubstring("required parameter 'name'"))
		g.Expect(err.Error()).To(ContainSubstring("PARAMS_TEST_NAME"))
	})

	t.Run("fails on invalid int env var", func(t *testing.T) {
		t.Setenv("PARAMS_TEST_NAME", "whatever")
		t.Setenv("PARAMS_TEST_COUNT", "not-a-number")

		cmd := newTestCommand()
		cmd.SetArgs([]string{})
		g.Expect(cmd.Execute()).To(Succeed())

		params := testParams{}
		err := ParseParameters(cmd, testParamsConfig, &params)
		g.Expect(err).To(HaveOccurred())
		g.Expect(err.Error()).To(ContainSubstring("not a valid integer"))
	})

	t.Run("fails on undeclared paramName tag", func(t *testing.T) {
		cmd := newTestCommand()
		cmd.SetArgs([]string{"--name", "john"})
		g.Expect(cmd.Execute()).To(Succeed())

		type badParams struct {
			Missing string `paramName:"missing"`
		}
		err := ParseParameters(cmd, testParamsConfig, &badParams{})
		g.Expect(err).To(HaveOccurred())
		g.Expect(err.Error()).To(ContainSubstring("not declared"))
	})
}
