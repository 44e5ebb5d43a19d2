package outwriter

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/yungngaew/gitlab-dashboard/internal/contract"
	"github.com/yungngaew/gitlab-dashboard/schema"
)

// PrintStoreStatus outputs the report store status.
func PrintStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeStoreStatus(w, status, cfg)
	}, "Wrote table")
}

func writeStoreStatus(w io.Writer, status schema.StoreStatus, cfg *contract.Config) error {
	fmt.Fprintf(w, "%s\n", sectionHeader(cfg, "🗄️", "STORE STATUS"))
	fmt.Fprintf(w, "  Backend: %s\n", status.Backend)
	fmt.Fprintf(w, "  Connected: %t\n", status.Connected)
	fmt.Fprintf(w, "  Total reports: %d\n", status.TotalReports)
	if !status.LastReportTime.IsZero() {
		fmt.Fprintf(w, "  Last report: %s\n", status.LastReportTime.Format(contract.DateTimeFormat))
	}

	if len(status.TableSizes) == 0 {
		return nil
	}

	names := make([]string, 0, len(status.TableSizes))
	for name := range status.TableSizes {
		names = append(names, name)
	}
	sort.Strings(names)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Table", "Rows"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, name := range names {
		data = append(data, []string{name, strconv.FormatInt(status.TableSizes[name], 10)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
