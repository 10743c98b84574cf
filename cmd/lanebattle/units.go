package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List the unit roster",
	Long:  `Shows every unit defined in the loaded unit masters, deployable or not.`,
	Run:   runUnits,
}

func runUnits(_ *cobra.Command, _ []string) {
	units, _, roster, err := loadBattleData()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading battle data: %v\n", err)
		os.Exit(1)
	}

	if len(units) == 0 {
		fmt.Println("No units defined.")
		return
	}

	deployable := make(map[int]bool, len(roster))
	for _, id := range roster {
		deployable[id] = true
	}

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, u := range units {
		if len(u.Name) > maxNameLen {
			maxNameLen = len(u.Name)
		}
	}

	fmt.Println("Units:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-4s  %-*s  %6s  %6s  %6s  %5s  %s\n", "ID", maxNameLen, "Name", "Cost", "HP", "Attack", "Speed", "Role")
	fmt.Printf("  %-4s  %-*s  %6s  %6s  %6s  %5s  %s\n", "--", maxNameLen, "----", "----", "--", "------", "-----", "----")

	// Print units
	for _, u := range units {
		role := "keep"
		if deployable[u.ID] {
			role = "deployable"
		}
		fmt.Printf("  %-4d  %-*s  %6.0f  %6.0f  %6.0f  %5.0f  %s\n",
			u.ID, maxNameLen, u.Name, u.Cost, u.MaxHealth, u.Attack, u.Speed, role)
	}

	fmt.Println()
	fmt.Println("Run 'lanebattle watch' to take them into battle.")
}
