package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tareeqi/tareeqweb/internal/form"
)

// bindFlags binds flag names to config keys so a changed flag overrides the
// file and environment.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) error {
	for name, key := range keys {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("no flag named %q", name)
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

// bindOnRun binds when the command runs rather than at init. Several
// commands share a key (build and export both own --out) and viper keeps
// only the last flag bound to it.
func bindOnRun(keys map[string]string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd.Flags(), keys)
	}
}

// kindValue is a pflag.Value accepting only form kinds.
type kindValue form.Kind

var _ pflag.Value = (*kindValue)(nil)

func newKindValue(def form.Kind, p *form.Kind) *kindValue {
	*p = def
	return (*kindValue)(p)
}

func (k *kindValue) String() string { return string(*k) }

func (k *kindValue) Set(s string) error {
	kind, err := form.ParseKind(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*k = kindValue(kind)
	return nil
}

func (k *kindValue) Type() string { return "kind" }
