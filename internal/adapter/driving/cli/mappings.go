package cli

import (
	"github.com/diillson/weekly-usage-report/internal/domain/entity"
	"github.com/diillson/weekly-usage-report/internal/shared/types"
)

// renderSnapshot mostra as duas tabelas de mapeamento e os projetos pendentes.
func renderSnapshot(console types.ConsoleInterface, snapshot entity.MappingSnapshot) {
	projects := console.CreateTable()
	projects.AddColumn("Project")
	projects.AddColumn("Customer")
	for _, p := range snapshot.Projects() {
		customer, ok := snapshot.ProjectCustomer[p]
		if !ok {
			customer = "(unassigned)"
		}
		projects.AddRow(p, customer)
	}
	console.Println(projects.Render())

	customers := console.CreateTable()
	customers.AddColumn("Customer")
	customers.AddColumn("Resource Group")
	for _, c := range snapshot.Customers() {
		group, ok := snapshot.CustomerGroup[c]
		if !ok {
			group = "(unassigned)"
		}
		customers.AddRow(c, group)
	}
	console.Println(customers.Render())

	groups := snapshot.Groups()
	if len(groups) == 0 {
		console.LogWarning("No resource groups defined; reports will use a single ungrouped bucket")
		return
	}
	console.LogInfo("%d project(s), %d customer(s), %d resource group(s)",
		len(snapshot.Projects()), len(snapshot.Customers()), len(groups))
}
