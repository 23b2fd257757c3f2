package dashboard

import (
	"github.com/aouyang1/go-multitool"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// MarksChart plots the training points as a scatter with the fitted line overlaid
func MarksChart(res *multitool.MarksResult) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    "Study Hours vs Marks",
				Subtitle: res.Equation,
			},
		),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hours", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Marks", Type: "value"}),
	)

	lineData := make([]opts.LineData, 0, len(res.LineHours))
	for i := 0; i < len(res.LineHours); i++ {
		lineData = append(lineData, opts.LineData{Value: []float64{res.LineHours[i], res.LineMarks[i]}})
	}
	line.AddSeries("Predicted Marks", lineData)

	scatter := charts.NewScatter()
	scatterData := make([]opts.ScatterData, 0, len(res.HoursData)+1)
	for i := 0; i < len(res.HoursData); i++ {
		scatterData = append(scatterData, opts.ScatterData{Value: []float64{res.HoursData[i], res.MarksData[i]}})
	}
	scatter.AddSeries("Marks", scatterData)
	scatter.AddSeries("Your Prediction", []opts.ScatterData{{Value: []float64{res.Hours, res.Prediction}}})

	line.Overlap(scatter)
	return line
}

// RentChart plots the fitted weight of each room feature
func RentChart(res *multitool.RentResult) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    "PG Rent Model Weights",
				Subtitle: res.Equation,
			},
		),
	)

	labels := make([]string, 0, len(res.Model.Weights)+1)
	barData := make([]opts.BarData, 0, len(res.Model.Weights)+1)
	for _, w := range res.Model.Weights {
		labels = append(labels, w.Label)
		barData = append(barData, opts.BarData{Value: w.Value})
	}
	labels = append(labels, "Intercept")
	barData = append(barData, opts.BarData{Value: res.Intercept})

	bar.SetXAxis(labels).
		AddSeries("Weight", barData)
	return bar
}

// ElectricityChart plots the subtotal of every priced line item
func ElectricityChart(res *multitool.ElectricityResult) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Cost Breakdown",
			},
		),
	)

	items := res.Breakdown.Items
	labels := make([]string, 0, len(items))
	barData := make([]opts.BarData, 0, len(items))
	for _, item := range items {
		labels = append(labels, item.Item)
		barData = append(barData, opts.BarData{Value: item.Subtotal})
	}

	bar.SetXAxis(labels).
		AddSeries("Subtotal", barData)
	return bar
}
