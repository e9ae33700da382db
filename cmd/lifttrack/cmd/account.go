package cmd

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/spf13/cobra"
)

var (
	passwordFlag string
	nameFlag     string
)

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Create an account and sign in",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		if err := a.online(); err != nil {
			return err
		}
		password, err := readPassword("Choose a password:")
		if err != nil {
			return err
		}
		a.ensureIndexes(ctx)

		if _, err := a.auth.Register(ctx, nameFlag, args[0], password); err != nil {
			return err
		}
		token, user, err := a.auth.Login(ctx, args[0], password)
		if err != nil {
			return err
		}
		if err := a.signIn(ctx, token, user); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s. Start a workout with `lifttrack start chest`.\n", user.DisplayName)
		return nil
	}),
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in on this device",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		if err := a.online(); err != nil {
			return err
		}
		password, err := readPassword("Password:")
		if err != nil {
			return err
		}
		token, user, err := a.auth.Login(ctx, args[0], password)
		if err != nil {
			return err
		}
		if err := a.signIn(ctx, token, user); err != nil {
			return err
		}
		a.ensureIndexes(ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", user.DisplayName)
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the session on this device",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		if err := a.store.Delete(cmd.Context(), tokenKey); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	}),
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change your profile",
	Long: `Show your profile, or change it with flags:

  lifttrack profile --units kg --rest 120 --name "Sam"`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		userID, err := a.userID(ctx)
		if err != nil {
			return err
		}

		var update domain.ProfileUpdate
		flags := cmd.Flags()
		if flags.Changed("name") {
			update.DisplayName = &nameFlag
		}
		if flags.Changed("units") {
			raw, _ := flags.GetString("units")
			unit := domain.Unit(strings.ToLower(raw))
			update.Units = &unit
		}
		if flags.Changed("rest") {
			rest, _ := flags.GetInt("rest")
			update.DefaultRestTimer = &rest
		}

		var user *domain.User
		if update == (domain.ProfileUpdate{}) {
			token, _, err := a.store.Get(ctx, tokenKey)
			if err != nil {
				return err
			}
			user, err = a.auth.CurrentUser(ctx, token)
			if err != nil {
				return err
			}
		} else {
			user, err = a.auth.UpdateProfile(ctx, userID, update)
			if err != nil {
				return err
			}
		}
		if err := a.rememberUnits(ctx, user.Profile.Units); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name   %s\n", user.DisplayName)
		fmt.Fprintf(out, "Email  %s\n", user.Email)
		fmt.Fprintf(out, "Units  %s\n", user.Profile.Units)
		fmt.Fprintf(out, "Rest   %ds\n", user.Profile.DefaultRestTimer)
		return nil
	}),
}

// readPassword prompts without echo unless --password was given.
func readPassword(message string) (string, error) {
	if passwordFlag != "" {
		return passwordFlag, nil
	}
	var password string
	prompt := &survey.Password{Message: message}
	if err := survey.AskOne(prompt, &password, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return password, nil
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringVar(&passwordFlag, "password", "", "password, for scripts (prompted when empty)")
	}
	registerCmd.Flags().StringVar(&nameFlag, "name", "", "display name")

	profileCmd.Flags().StringVar(&nameFlag, "name", "", "display name")
	profileCmd.Flags().String("units", "", "weight label: lb or kg")
	profileCmd.Flags().Int("rest", 0, "default rest between sets, in seconds")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, profileCmd)
}
