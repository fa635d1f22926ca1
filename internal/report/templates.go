package report

// htmlTemplate is the main HTML template for the report
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>pagelat {{.Result.RunID}} - Page Fault Latency Report</title>
    <style>
        :root {
            --bg-primary: #ffffff;
            --bg-secondary: #f8fafc;
            --text-primary: #1e293b;
            --text-secondary: #64748b;
            --border-color: #e2e8f0;
            --accent-cold: #f59e0b;
            --accent-hot: #22c55e;
            --accent-error: #ef4444;
            --shadow: 0 1px 3px rgba(0, 0, 0, 0.1);
        }

        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background-color: var(--bg-secondary);
            color: var(--text-primary);
            line-height: 1.6;
        }

        .container {
            max-width: 1100px;
            margin: 0 auto;
            padding: 2rem;
        }

        .card {
            background: var(--bg-primary);
            border: 1px solid var(--border-color);
            border-radius: 8px;
            box-shadow: var(--shadow);
            padding: 1.5rem;
            margin-bottom: 1.5rem;
        }

        h1 { font-size: 1.75rem; margin-bottom: 0.25rem; }
        h2 { font-size: 1.2rem; margin-bottom: 1rem; }
        .muted { color: var(--text-secondary); font-size: 0.9rem; }

        table { width: 100%; border-collapse: collapse; font-variant-numeric: tabular-nums; }
        th, td { padding: 0.5rem 0.75rem; border-bottom: 1px solid var(--border-color); text-align: right; }
        th:first-child, td:first-child { text-align: left; }

        .bar { height: 1.25rem; border-radius: 4px; }
        .bar.cold { background: var(--accent-cold); }
        .bar.hot { background: var(--accent-hot); }
        .warning { color: var(--accent-error); font-weight: 600; }

        dl { display: grid; grid-template-columns: max-content 1fr; gap: 0.25rem 1.5rem; }
        dt { color: var(--text-secondary); }
    </style>
</head>
<body>
<div class="container">
    <div class="card">
        <h1>Page fault latency</h1>
        <div class="muted">Run {{.Result.RunID}} &middot; {{.Generated}} &middot; took {{formatLatency .Result.Duration}}</div>
    </div>

    <div class="card">
        <h2>Cold vs hot touches</h2>
        <table>
            <thead>
            <tr>
                <th>case</th><th>pages</th><th>mean</th><th>stddev</th><th>min</th><th>max</th>
                <th>p50</th><th>p99</th><th>minor faults</th>
            </tr>
            </thead>
            <tbody>
            {{range .Cases}}
            <tr class="{{.Class}}">
                <td>{{.Name}}</td>
                <td>{{formatNumber .Phase.Summary.Count}}</td>
                <td>{{printf "%.2f" .Phase.Summary.Mean}} ns</td>
                <td>{{printf "%.2f" .Phase.Summary.StdDev}} ns</td>
                <td>{{nanos .Phase.Summary.Min}}</td>
                <td>{{nanos .Phase.Summary.Max}}</td>
                <td>{{nanos .Phase.Percentiles.P50}}</td>
                <td>{{nanos .Phase.Percentiles.P99}}</td>
                <td>{{formatNumber .Phase.Faults.Minor}}</td>
            </tr>
            {{end}}
            </tbody>
        </table>
        <div style="margin-top: 1rem">
            {{range .Cases}}
            <div class="muted">{{.Name}}</div>
            <div class="bar {{.Class}}" style="width: {{printf "%.1f" .Width}}%"></div>
            {{end}}
        </div>
        <p style="margin-top: 1rem">Cold touches are <strong>{{slowdown .Result}}</strong> slower than hot touches.</p>
        {{if gt .Result.ResidencyHints 0}}
        <p class="warning">{{.Result.ResidencyHints}} eviction(s) were not fully honored; cold samples may include resident pages.</p>
        {{end}}
    </div>

    <div class="card">
        <h2>Parameters</h2>
        <dl>
            <dt>Region</dt><dd>{{formatBytes .Result.SizeBytes}} ({{formatNumber .Result.Pages}} pages of {{.Result.PageSize}} bytes)</dd>
            <dt>Repeats</dt><dd>{{.Result.Repeats}}</dd>
            <dt>Order</dt><dd>{{.Result.Order}}{{if eq .Result.Order.String "random"}} (seed {{.Result.Seed}}){{end}}</dd>
            <dt>Policy</dt><dd>{{.Result.Policy}}</dd>
            <dt>Clock resolution</dt><dd>{{formatLatency .Result.Clock.Resolution}}</dd>
            <dt>Clock overhead</dt><dd>min {{formatLatency .Result.Clock.OverheadMin}}, mean {{formatLatency .Result.Clock.OverheadMean}}</dd>
            {{with .Host}}
            <dt>Host</dt><dd>{{.OS}}/{{.Arch}}, {{.CPUs}} CPUs</dd>
            <dt>Memory</dt><dd>{{formatBytes .TotalMemory}} total, {{formatBytes .AvailableMemory}} available</dd>
            {{end}}
        </dl>
    </div>
</div>
</body>
</html>
`
