package console

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/diillson/weekly-usage-report/internal/domain/entity"
	"github.com/diillson/weekly-usage-report/internal/shared/types"
)

// skipOption é a opção extra oferecida em Select para deixar o item sem escolha.
const skipOption = "(skip)"

// previewWeeks limita as colunas da prévia no terminal; o arquivo exportado tem todas.
const previewWeeks = 8

// Console é uma implementação do ConsoleInterface.
type Console struct {
	interactive bool
}

// NewConsole cria um novo Console. Select só pergunta quando stdin é um terminal.
func NewConsole() *Console {
	return &Console{interactive: isatty.IsTerminal(os.Stdin.Fd())}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		_ = h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// DisplayPivot mostra as últimas semanas da tabela dentro de um painel.
func (c *Console) DisplayPivot(pt entity.PivotTable) {
	start := 0
	if len(pt.Weeks) > previewWeeks {
		start = len(pt.Weeks) - previewWeeks
	}

	t := c.CreateTable()
	t.AddColumn(pt.GroupLabel)
	for _, w := range pt.Weeks[start:] {
		t.AddColumn(w.String())
	}
	for _, row := range pt.Rows {
		cells := []interface{}{row.Label}
		for _, v := range row.Values[start:] {
			if v == 0 {
				cells = append(cells, pterm.FgGray.Sprint("0"))
				continue
			}
			cells = append(cells, entity.FormatQuantity(v))
		}
		t.AddRow(cells...)
	}

	title := "Weekly Resource Usage"
	if start > 0 {
		title = fmt.Sprintf("%s (last %d of %d weeks)", title, previewWeeks, len(pt.Weeks))
	}
	panel := pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(t.Render())
	fmt.Println("\n" + panel)
}

// Select pergunta ao operador com um seletor interativo do pterm.
func (c *Console) Select(prompt string, options []string) (string, bool) {
	if !c.interactive || len(options) == 0 {
		return "", false
	}
	choice, err := pterm.DefaultInteractiveSelect.
		WithDefaultText(prompt).
		WithOptions(append(append([]string{}, options...), skipOption)).
		Show()
	if err != nil || choice == skipOption {
		return "", false
	}
	return choice, true
}
