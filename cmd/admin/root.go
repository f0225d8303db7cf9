package main

import (
	"fmt"
	"syscall"

	"github.com/evandrarf/tutorly-be/database"
	"github.com/evandrarf/tutorly-be/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gorm.io/gorm"
)

var readPasswordFunc = term.ReadPassword // mockable

var rootCmd = &cobra.Command{
	Use:          "tutorly-admin",
	Short:        "Manage tutorly school accounts",
	SilenceUsage: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations and seed the question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log := open()
		if err := database.Migrate(db); err != nil {
			return err
		}
		if err := database.SeedQuestionBank(db, log); err != nil {
			return err
		}
		log.Info("Migrations completed successfully")
		return nil
	},
}

var addSchoolCmd = &cobra.Command{
	Use:   "add-school",
	Short: "Create a school account; the password is prompted",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		id, _ := cmd.Flags().GetString("id")

		password, err := promptPassword(cmd)
		if err != nil {
			return err
		}

		db, _ := open()
		school, err := addSchool(db, id, name, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "School created: %s (%s)\n", school.Name, school.ID)
		return nil
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-school-password",
	Short: "Reset a school's approval password; the new password is prompted",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")

		password, err := promptPassword(cmd)
		if err != nil {
			return err
		}

		db, _ := open()
		if err := resetSchoolPassword(db, id, password); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Password updated")
		return nil
	},
}

func init() {
	addSchoolCmd.Flags().String("name", "", "School name")
	addSchoolCmd.Flags().String("id", "", "School ID (generated when empty)")
	_ = addSchoolCmd.MarkFlagRequired("name")

	resetPasswordCmd.Flags().String("id", "", "School ID")
	_ = resetPasswordCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(addSchoolCmd)
	rootCmd.AddCommand(resetPasswordCmd)
}

func open() (*gorm.DB, *logrus.Logger) {
	viperConfig := config.NewViper()
	log := config.NewLogger(viperConfig)
	return database.New(viperConfig), log
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
