package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tareeqi/tareeqweb/internal/form"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Validate and send one form submission to the relay",
	Long: `Fill in a contact or beta registration form from flags, validate it and
send it to the relay once. Field errors are printed in form order and no
request is made when the form is invalid.

Examples:
  tareeq submit --name Ali --email ali@x.co --subject Hi --message "Hello there!"
  tareeq submit --kind beta --name Sara --email s@y.org --phone "+966 5512345678"`,
	Args:    cobra.NoArgs,
	PreRunE: bindOnRun(submitKeys),
	RunE:    runSubmit,
}

var (
	submitKind   form.Kind
	submitValues = map[form.Field]*string{
		form.FieldName:    new(string),
		form.FieldEmail:   new(string),
		form.FieldPhone:   new(string),
		form.FieldSubject: new(string),
		form.FieldMessage: new(string),
	}
)

// errInvalidSubmission is returned after the field errors were printed.
var errInvalidSubmission = errors.New("submission is invalid")

var submitKeys = map[string]string{
	"endpoint": "relay.endpoint",
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().Var(newKindValue(form.KindContact, &submitKind), "kind", "Form kind (contact, beta)")
	submitCmd.Flags().StringVar(submitValues[form.FieldName], "name", "", "Sender name")
	submitCmd.Flags().StringVar(submitValues[form.FieldEmail], "email", "", "Sender email")
	submitCmd.Flags().StringVar(submitValues[form.FieldPhone], "phone", "", "Phone number (beta)")
	submitCmd.Flags().StringVar(submitValues[form.FieldSubject], "subject", "", "Subject (contact)")
	submitCmd.Flags().StringVar(submitValues[form.FieldMessage], "message", "", "Message (contact)")
	submitCmd.Flags().String("endpoint", "", "Relay endpoint")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	state := form.NewState(newRelay(cfg, logger),
		form.WithLogger(logger),
		form.WithSupportEmail(cfg.Site.SupportEmail),
	)
	state.Edit(form.FieldKind, string(submitKind))
	for field, value := range submitValues {
		state.Edit(field, *value)
	}

	errs := state.Submit(cmd.Context())
	if !errs.Valid() {
		for _, field := range form.Fields() {
			if msg, ok := errs[field]; ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
			}
		}
		return errInvalidSubmission
	}

	status := state.Status()
	if status.Kind == form.StatusError {
		return errors.New(status.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), status.Message)
	return nil
}
