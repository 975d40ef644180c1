package html

// ReportTemplate renders every report sheet as a table under a summary header
const ReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - {{.Date}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f5f7fa;
            color: #2c3e50;
            line-height: 1.6;
        }

        .container {
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
        }

        header {
            background: linear-gradient(135deg, #1f6f8b 0%, #99a8b2 100%);
            color: white;
            padding: 40px 20px;
            margin-bottom: 30px;
            border-radius: 8px;
            box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
        }

        header h1 {
            font-size: 2.5em;
            margin-bottom: 10px;
        }

        header p {
            font-size: 1.1em;
            opacity: 0.9;
        }

        .summary, .sheet {
            background: white;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.05);
        }

        .summary h2, .sheet h2 {
            color: #1f6f8b;
            margin-bottom: 15px;
            font-size: 1.5em;
        }

        .stats {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 15px;
            margin-top: 15px;
        }

        .stat-card {
            background: #f8f9fa;
            padding: 15px;
            border-radius: 6px;
            border-left: 4px solid #1f6f8b;
        }

        .stat-card .label {
            font-size: 0.9em;
            color: #6c757d;
            margin-bottom: 5px;
        }

        .stat-card .value {
            font-size: 1.8em;
            font-weight: bold;
            color: #2c3e50;
        }

        nav ul {
            list-style: none;
            display: flex;
            flex-wrap: wrap;
            gap: 10px;
        }

        nav a {
            color: #1f6f8b;
            text-decoration: none;
        }

        table {
            width: 100%;
            border-collapse: collapse;
            font-size: 0.9em;
        }

        th {
            background: #1f6f8b;
            color: white;
            text-align: left;
            padding: 8px;
        }

        td {
            padding: 6px 8px;
            border-bottom: 1px solid #e9ecef;
            white-space: pre-wrap;
        }

        tr:nth-child(even) td {
            background: #f8f9fa;
        }

        td.num {
            text-align: right;
            font-variant-numeric: tabular-nums;
        }

        .empty {
            color: #6c757d;
            font-style: italic;
        }

        footer {
            text-align: center;
            color: #6c757d;
            font-size: 0.85em;
            padding: 20px;
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>{{.Title}}</h1>
            <p>Generated on {{.Date}}</p>
        </header>

        <section class="summary">
            <h2>Overview</h2>
            <div class="stats">
                <div class="stat-card">
                    <div class="label">Power Plants</div>
                    <div class="value">{{.TotalPlants}}</div>
                </div>
                <div class="stat-card">
                    <div class="label">Total Capacity (MW)</div>
                    <div class="value">{{.TotalCapacity}}</div>
                </div>
                <div class="stat-card">
                    <div class="label">Sheets</div>
                    <div class="value">{{len .Sheets}}</div>
                </div>
            </div>
            <nav>
                <ul>
                {{- range .Sheets}}
                    <li><a href="#{{.Anchor}}">{{.Name}}</a></li>
                {{- end}}
                </ul>
            </nav>
        </section>

        {{- range .Sheets}}
        <section class="sheet" id="{{.Anchor}}">
            <h2>{{.Name}}</h2>
            {{- if .Rows}}
            <table>
                <thead>
                    <tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
                </thead>
                <tbody>
                {{- $numeric := .Numeric}}
                {{- range .Rows}}
                    <tr>{{range $i, $cell := .}}<td class="{{cellClass $numeric $i}}">{{$cell}}</td>{{end}}</tr>
                {{- end}}
                </tbody>
            </table>
            {{- else}}
            <p class="empty">No rows.</p>
            {{- end}}
        </section>
        {{- end}}

        <footer>Run {{.RunID}}</footer>
    </div>
</body>
</html>
`
