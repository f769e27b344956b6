package builder

import (
	"fmt"
	"strconv"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/aretw0/lectern/pkg/domain"
)

func (r *run) chart(s *ppt.Slide, e domain.Chart) error {
	series := make([]*ppt.ChartSeries, 0, len(e.Series))
	for i, cs := range e.Series {
		labels := seriesLabels(cs)
		ps := ppt.NewChartSeriesOrdered(seriesName(cs, i), labels, cs.Values)
		if i < len(e.Colors) && e.Colors[i] != "" {
			ps.SetFillColor(ppt.NewColor(e.Colors[i]))
		}
		series = append(series, ps)
	}
	if len(series) == 0 {
		return &domain.Error{Kind: domain.KindElementRender, Err: fmt.Errorf("%w: chart has no series", domain.ErrElementRender)}
	}

	plot, err := plotFor(e.ChartType, series)
	if err != nil {
		return err
	}

	cs := s.CreateChartShape()
	r.place(cs, e.Box)
	if e.Title != "" {
		cs.GetTitle().SetText(e.Title)
	} else {
		cs.GetTitle().SetVisible(false)
	}
	legend := cs.GetLegend()
	legend.Visible = e.ShowLegend
	legend.Position = ppt.LegendPosition(e.LegendPos)
	cs.GetPlotArea().SetType(plot)
	return nil
}

func plotFor(kind string, series []*ppt.ChartSeries) (ppt.ChartType, error) {
	switch kind {
	case "bar":
		c := ppt.NewBarChart()
		for _, s := range series {
			c.AddSeries(s)
		}
		return c, nil
	case "bar3d":
		c := ppt.NewBar3DChart()
		for _, s := range series {
			c.BarChart.AddSeries(s)
		}
		return c, nil
	case "line":
		c := ppt.NewLineChart()
		for _, s := range series {
			c.AddSeries(s)
		}
		return c, nil
	case "area":
		c := ppt.NewAreaChart()
		for _, s := range series {
			c.AddSeries(s)
		}
		return c, nil
	case "pie":
		c := ppt.NewPieChart()
		c.AddSeries(series[0])
		return c, nil
	case "pie3d":
		c := ppt.NewPie3DChart()
		c.PieChart.AddSeries(series[0])
		return c, nil
	case "doughnut":
		c := ppt.NewDoughnutChart()
		for _, s := range series {
			c.AddSeries(s)
		}
		return c, nil
	case "scatter":
		c := ppt.NewScatterChart()
		for _, s := range series {
			c.AddSeries(s)
		}
		return c, nil
	case "radar":
		c := ppt.NewRadarChart()
		for _, s := range series {
			c.AddSeries(s)
		}
		return c, nil
	}
	return nil, &domain.Error{Kind: domain.KindElementRender, Err: fmt.Errorf("%w: unsupported chart type %q", domain.ErrElementRender, kind)}
}

// seriesLabels pads or invents category labels so that every value has one.
// Duplicate labels are suffixed because categories are keyed by name.
func seriesLabels(cs domain.ChartSeries) []string {
	labels := make([]string, len(cs.Values))
	seen := make(map[string]int, len(cs.Values))
	for i := range cs.Values {
		l := strconv.Itoa(i + 1)
		if i < len(cs.Labels) && cs.Labels[i] != "" {
			l = cs.Labels[i]
		}
		if n := seen[l]; n > 0 {
			seen[l] = n + 1
			l = fmt.Sprintf("%s (%d)", l, n+1)
		} else {
			seen[l] = 1
		}
		labels[i] = l
	}
	return labels
}

func seriesName(cs domain.ChartSeries, i int) string {
	if cs.Name != "" {
		return cs.Name
	}
	return fmt.Sprintf("Series %d", i+1)
}
