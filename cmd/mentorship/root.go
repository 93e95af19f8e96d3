package main

import "github.com/spf13/cobra"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mentorship",
		Short: "Mentor matching and session booking service",
		Long: `Mentorship matches mentees with mentors by industry experience
and schedules sessions in the mentors' weekly time slots.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())

	return cmd
}
