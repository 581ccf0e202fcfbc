// Package pages holds the static HTML shell served at the root. The real
// interface is the JSON/SSE API; this page just documents it.
package pages

var Index = `
<!DOCTYPE html>
<html>
<head>
    <title>promptsmith</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
        }
        code {
            background: #f4f4f4;
            padding: 2px 4px;
        }
    </style>
</head>
<body>
    <h1>promptsmith</h1>
    <p>Persona prompt studio. Describe an assistant, get a generated system
    prompt back, refine it over chat, and test the persona in a second
    conversation.</p>
    <h2>API</h2>
    <ul>
        <li><code>GET /api/state</code>: session snapshot</li>
        <li><code>POST /api/login</code>, <code>POST /api/logout</code></li>
        <li><code>POST /api/generate</code>: streamed as server-sent events</li>
        <li><code>POST /api/refine</code>, <code>POST /api/test</code>: streamed chat turns</li>
        <li><code>POST /api/test/clear</code></li>
        <li><code>POST /api/history/select|delete|clear</code></li>
        <li><code>POST /api/admin/settings</code>, <code>POST /api/prompt/copy</code></li>
        <li><code>GET /api/export/refine</code>, <code>GET /api/export/test</code>: transcript download</li>
    </ul>
</body>
</html>`
