package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spec-kit/casegen/internal/domain"
)

const bannerWidth = 70

// Reporter prints the human-readable run summary.
type Reporter struct {
	out        io.Writer
	sampleRows int
	topIssues  int
}

// NewReporter creates a reporter writing to out. sampleRows and topIssues
// size the sample and top-issue sections; negative values count as zero.
func NewReporter(out io.Writer, sampleRows, topIssues int) *Reporter {
	return &Reporter{out: out, sampleRows: max(sampleRows, 0), topIssues: max(topIssues, 0)}
}

// Print writes the report sections in a fixed order.
func (r *Reporter) Print(summary domain.Summary, records []domain.CaseRecord, savedTo string) error {
	p := &printer{w: r.out}
	rule := strings.Repeat("=", bannerWidth)

	p.line(rule)
	p.line("SYNTHETIC SUPPORT CASE DATA GENERATED SUCCESSFULLY")
	p.line(rule)

	p.section("DATASET SUMMARY")
	p.printf("Total Cases: %s\n", groupThousands(summary.Total))
	if summary.EarliestCreate != nil && summary.LatestCreate != nil {
		p.printf("Date Range: %s to %s\n",
			domain.FormatTimestamp(*summary.EarliestCreate), domain.FormatTimestamp(*summary.LatestCreate))
	} else {
		p.line("Date Range: n/a")
	}

	p.section("REGIONAL DISTRIBUTION")
	p.counts("Region", summary.Regions)

	p.section("PRIORITY DISTRIBUTION")
	p.counts("Priority", summary.Priorities)

	p.section("AVERAGE RESOLUTION TIME BY REGION (days)")
	for _, rm := range summary.RegionMeans {
		p.printf("  %s: %.1f days\n", rm.Region, rm.Mean)
	}

	p.section(fmt.Sprintf("TOP %d MOST COMMON ISSUES", r.topIssues))
	p.counts("Reported Issue", summary.TopIssues)

	p.section("CASE STATUS BREAKDOWN")
	p.counts("Case status", summary.CaseStatuses)

	p.section("")
	p.printf("Data saved to: %s\n", savedTo)

	n := min(r.sampleRows, len(records))
	p.section(fmt.Sprintf("SAMPLE RECORDS (First %d):", n))
	p.table(domain.Columns, func(emit func([]string)) {
		for _, rec := range records[:n] {
			emit(Row(rec))
		}
	})

	p.section("DETAILED STATISTICS BY REGION AND PRIORITY:")
	p.table([]string{"Region", "Priority", "mean", "median", "std", "count"}, func(emit func([]string)) {
		for _, g := range summary.Groups {
			emit([]string{
				string(g.Region), string(g.Priority),
				formatStat(g.Mean), formatStat(g.Median), formatStat(g.StdDev),
				strconv.Itoa(g.Count),
			})
		}
	})
	return p.err
}

// printer remembers the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) line(s string) {
	p.printf("%s\n", s)
}

func (p *printer) section(title string) {
	if title == "" {
		p.line("")
		return
	}
	p.printf("\n %s\n", title)
}

func (p *printer) counts(label string, rows []domain.Frequency) {
	p.table([]string{label, "count"}, func(emit func([]string)) {
		for _, f := range rows {
			emit([]string{f.Value, strconv.Itoa(f.Count)})
		}
	})
}

func (p *printer) table(header []string, body func(emit func([]string))) {
	if p.err != nil {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	write := func(cells []string) {
		if p.err != nil {
			return
		}
		_, p.err = fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	write(header)
	body(write)
	if err := tw.Flush(); err != nil && p.err == nil {
		p.err = err
	}
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
