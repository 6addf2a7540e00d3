package htmlreport

const pageTemplate = `{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
:root {
  --fg: #1f2933; --muted: #616e7c; --border: #cbd2d9; --head: #e4e7eb;
  --alt: #f5f7fa; --accent: #0b69a3; --absent: #c62828;
}
* { box-sizing: border-box; }
body { font-family: "Segoe UI", Roboto, Arial, sans-serif; color: var(--fg); margin: 0 auto; padding: 1rem; max-width: 1200px; }
.print-header { display: flex; justify-content: space-between; align-items: baseline; border-bottom: 2px solid var(--accent); margin-bottom: 1rem; }
.print-header h1 { font-size: 1.4rem; margin: .25rem 0; }
.print-header .meta { color: var(--muted); font-size: .85rem; text-align: right; }
section { margin-bottom: 1.75rem; page-break-inside: avoid; }
h2 { font-size: 1.1rem; color: var(--accent); margin: 0 0 .5rem; }
h3 { font-size: 1rem; margin: .75rem 0 .35rem; }
table { width: 100%; border-collapse: collapse; font-size: .85rem; }
th, td { border: 1px solid var(--border); padding: .35rem .5rem; text-align: left; }
th { background: var(--head); }
td.num, th.num { text-align: right; }
tr:nth-child(even) td { background: var(--alt); }
tr.total td { font-weight: 700; background: var(--head); }
.absent h3, .absent td { color: var(--absent); }
@media print {
  body { max-width: none; padding: 0; }
  section.circle { page-break-before: always; }
}
</style>
</head>
<body>
<header class="print-header">
  <h1>{{.Title}}</h1>
  <div class="meta">
    {{if .Source}}<div>Source: {{.Source}}</div>{{end}}
    <div>Generated on: <span id="printDate">{{.PrintDate}}</span></div>
  </div>
</header>
{{template "summary" .}}
{{if not .SummaryOnly}}{{if .IsArea}}{{template "area" .}}{{else}}{{template "fleet" .}}{{end}}{{end}}
</body>
</html>
{{end}}

{{define "summary"}}{{if .ShowSummary}}<section class="summary">
  <h2>Overall Circle Summary</h2>
  <table>
    <thead>
      <tr><th>Circle</th><th class="num">Total Wards</th><th class="num">Total Households</th><th class="num">Covered Households</th><th class="num">Percentage(%)</th></tr>
    </thead>
    <tbody>
    {{range .Summaries}}
      <tr><td>{{.Name}}</td><td class="num">{{.WardCount}}</td><td class="num">{{.Total}}</td><td class="num">{{.Covered}}</td><td class="num">{{.Percentage}}</td></tr>
    {{end}}
      <tr class="total"><td>{{.Overall.Name}}</td><td class="num">{{.Overall.WardCount}}</td><td class="num">{{.Overall.Total}}</td><td class="num">{{.Overall.Covered}}</td><td class="num">{{.Overall.Percentage}}</td></tr>
    </tbody>
  </table>
</section>{{end}}{{end}}

{{define "area"}}{{range .Area}}<section class="circle">
  <h2>Circle {{.Summary.Number}}: {{.Summary.Name}}</h2>
  <table>
    <thead>
      <tr><th>Zone</th><th>Ward</th><th class="num">Total</th><th class="num">Covered</th><th class="num">Not Covered</th><th class="num">Percentage(%)</th></tr>
    </thead>
    <tbody>
    {{range .Wards}}
      <tr><td>{{.Zone}}</td><td>{{.Ward}}</td><td class="num">{{.Total}}</td><td class="num">{{.Covered}}</td><td class="num">{{.NotCovered}}</td><td class="num">{{.Percentage}}</td></tr>
    {{end}}
      <tr class="total"><td colspan="2">Circle Total</td><td class="num">{{.Summary.Total}}</td><td class="num">{{.Summary.Covered}}</td><td class="num">{{.Summary.NotCovered}}</td><td class="num">{{.Summary.Percentage}}</td></tr>
    </tbody>
  </table>
</section>
{{end}}{{end}}

{{define "fleet"}}{{range .Fleet}}<section class="circle">
  <h2>Circle: {{.Summary.Name}}</h2>
  {{if .Vehicles}}<table>
    <thead>
      <tr><th>Vehicle No.</th><th class="num">Total Households</th><th class="num">Covered Households</th><th class="num">Not Covered</th><th class="num">Percentage(%)</th><th>Wards Covered</th><th>Route Name</th></tr>
    </thead>
    <tbody>
    {{range .Vehicles}}
      <tr><td>{{.Vehicle}}</td><td class="num">{{.Total}}</td><td class="num">{{.Covered}}</td><td class="num">{{.NotCovered}}</td><td class="num">{{.Percentage}}</td><td>{{join .Wards}}</td><td>{{join .RouteNames}}</td></tr>
    {{end}}
    </tbody>
  </table>{{end}}
  {{if .AbsentRoutes}}<div class="absent">
    <h3>ABSENT VEHICLE ROUTE</h3>
    <table>
      <thead><tr><th>Route Name</th><th>Ward Name</th></tr></thead>
      <tbody>
      {{range .AbsentRoutes}}
        <tr><td>{{.RouteName}}</td><td>{{.WardName}}</td></tr>
      {{end}}
      </tbody>
    </table>
  </div>{{end}}
</section>
{{end}}{{end}}`
