package main

import (
	"fmt"

	"github.com/fwojciec/gallery"
)

// Run executes the departments command.
func (c *DepartmentsCmd) Run(deps *Dependencies) error {
	departments, err := deps.Search.FindDepartments(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gallery.ErrorMessage(err))
		return err
	}

	if len(departments) == 0 {
		fmt.Fprintln(deps.Stdout, "No departments found. Use 'gallery import' to load a collection.")
		return nil
	}

	for _, d := range departments {
		fmt.Fprintln(deps.Stdout, d)
	}
	return nil
}
