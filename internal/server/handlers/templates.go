package handlers

import "html/template"

const formPage = `{{define "form"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Fabric Data Entry Form</title>
<style>
*{box-sizing:border-box}
body{font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;background:#f3f4f6;color:#1f2937;display:flex;justify-content:center;padding:24px;margin:0}
.card{width:100%;max-width:768px;background:#fff;border-radius:8px;box-shadow:0 10px 15px rgba(0,0,0,.1);padding:32px}
h2{font-size:28px;margin:0 0 24px}
.row{display:grid;grid-template-columns:repeat(auto-fit,minmax(200px,1fr));gap:24px;margin-bottom:24px}
label{display:block;font-size:14px;font-weight:500;color:#374151}
input{margin-top:8px;width:100%;padding:8px 12px;border:1px solid #d1d5db;border-radius:6px;font-size:14px}
.btn{display:block;width:100%;padding:10px;border:none;border-radius:6px;color:#fff;font-weight:600;font-size:15px;cursor:pointer;text-align:center;text-decoration:none}
.btn-submit{background:#4f46e5}.btn-submit:hover{background:#4338ca}
.btn-print{background:#16a34a;margin-top:16px}.btn-print:hover{background:#15803d}
.error{margin-top:16px;color:#dc2626}
.qr{margin-top:24px}
.qr img{max-width:100%}
</style>
</head>
<body>
<div class="card">
  <h2>Fabric Data Entry Form</h2>
  <form method="post" action="/fabric">
    <div class="row">
      <div><label for="fabricType">Fabric Type</label><input type="text" id="fabricType" name="fabricType" value="{{.State.Fields.FabricType}}" required></div>
      <div><label for="colour">Colour</label><input type="text" id="colour" name="colour" value="{{.State.Fields.Colour}}" required></div>
    </div>
    <div class="row">
      <div><label for="length">Length (in mtr)</label><input type="number" id="length" name="length" value="{{.State.Fields.Length}}" min="0" step="0.01" required></div>
      <div><label for="width">Width</label><input type="number" id="width" name="width" value="{{.State.Fields.Width}}" min="0" step="0.01" required></div>
      <div><label for="price">Price</label><input type="number" id="price" name="price" value="{{.State.Fields.Price}}" min="0" step="0.01" required></div>
    </div>
    <div class="row">
      <div><label for="dateOfPurchase">Date of Purchase</label><input type="date" id="dateOfPurchase" name="dateOfPurchase" value="{{.State.Fields.DateOfPurchase}}" required></div>
    </div>
    <button type="submit" class="btn btn-submit">{{if .State.Submitting}}Submitting...{{else}}Submit{{end}}</button>
    {{if .State.Error}}<div class="error"><p>Error: {{.State.Error}}</p></div>{{end}}
  </form>
  {{if .State.QRCodeURL}}
  <div class="qr">
    <h3>Generated QR Code</h3>
    <img src="{{.State.QRCodeURL}}" alt="Generated QR Code">
    <a class="btn btn-print" href="/print" target="_blank" onclick="var w = window.open('/print', '_blank', 'width=600,height=600'); if (!w) { alert('Failed to open print window.'); } return false;">Print QR Code</a>
  </div>
  {{end}}
</div>
{{if .Alert}}<script>alert({{.Alert}});</script>{{end}}
</body>
</html>
{{end}}`

const printErrorPage = `{{define "printError"}}<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Print QR Code</title></head>
<body>
<p>{{.}}</p>
<script>alert({{.}}); window.close();</script>
</body>
</html>
{{end}}`

// Templates parses the HTML views served by the handlers.
func Templates() *template.Template {
	views := template.Must(template.New("views").Parse(formPage))
	return template.Must(views.Parse(printErrorPage))
}
