package services

import "html/template"

const BRAND_COLOR = "#4f7cff"

var receiptTemplate = template.Must(template.New("receipt").Parse(`<div style="font-family: Inter, Arial, sans-serif; background-color:#f7f7f7; margin:0; padding:24px; color:#333;">
  <div style="max-width:800px; line-height:2; width:90%; min-width:280px; margin:0 auto; background:#fff; box-shadow:0 2px 10px rgba(0,0,0,0.06); border-radius:12px;">
    <div style="margin:20px auto 10px; width:100%; max-width:640px; padding:0 0 12px; border-bottom:1px solid #eee;">
      <img src="{{.LogoSrc}}" width="36" height="36" alt="Starbyte" style="border-radius:8px;"/>
      <a href="{{.BaseURL}}" style="font-size:1.4em; color:{{.Brand}}; text-decoration:none; font-weight:800;">Starbyte</a>
    </div>
    <div style="margin:0 auto; width:100%; max-width:640px; padding:10px 0;">
      {{- if .Name}}
      <p style="margin:0 0 8px;">Hi {{.Name}}, thanks for your purchase.</p>
      {{- end}}
      <div style="font-size:12px; color:#334155; padding:6px 0 12px; border-bottom:1px solid #eef2f7;">Order ID: {{.OrderID}}</div>
      <table width="100%" style="font-size:12px; color:#334155; padding:16px 0;">
        <tr>
          <td><div style="font-weight:700; color:#64748b;">EMAIL</div><div>{{.To}}</div></td>
          <td><div style="font-weight:700; color:#64748b;">INVOICE DATE</div><div>{{.Date}}</div></td>
          <td><div style="font-weight:700; color:#64748b;">TOTAL</div><div>{{.Total}}</div></td>
        </tr>
      </table>
      <div style="padding:8px 0; font-weight:700; color:#0f172a;">Order Summary</div>
      <table width="100%" cellpadding="0" cellspacing="0" style="font-size:14px; color:#0f172a;">
        {{- range .Products}}
        <tr>
          <td style="vertical-align:top; width:72px;">{{if .ImageURL}}<img src="{{.ImageURL}}" width="64" height="64" alt="Product" style="border-radius:8px; object-fit:cover;"/>{{end}}</td>
          <td style="padding-left:16px;">
            <p style="margin:0; font-weight:600;">{{.Title}}</p>
            {{- if .Description}}
            <p style="margin:6px 0; color:#64748b;">{{.Description}}</p>
            {{- end}}
            {{- if .Instructions}}
            <p style="margin:6px 0 0 0; color:#475569;">{{.Instructions}}</p>
            {{- end}}
            {{- if .Code}}
            <p style="margin:6px 0 0 0;"><strong>Code:</strong> <code>{{.Code}}</code></p>
            {{- else if .Link}}
            <p style="margin:6px 0 0 0;"><strong>Link:</strong> <a href="{{.Link}}">{{.Link}}</a></p>
            {{- end}}
          </td>
          <td style="text-align:right; white-space:nowrap;">{{.Price}}</td>
        </tr>
        {{- end}}
      </table>
      <hr style="border:none; border-top:1px solid #eef2f7; margin:4px 0;"/>
      <div style="padding:8px 0; text-align:right;"><strong>TOTAL:</strong> <span style="font-weight:800;">{{.Total}}</span></div>
      <p style="font-size:1em; color:{{.Brand}}; margin:18px 0 0;">Warm Regards,</p>
      <p style="font-size:1em; color:{{.Brand}}; font-weight:700; margin:0 0 8px;">The Starbyte Team</p>
      <hr style="border:none; border-top:1px solid #eee; margin:12px 0;"/>
      <div style="text-align:center; padding:10px 0; color:#98a2b3; font-size:0.8em; line-height:1.4;">
        <p style="margin:6px 0;">&copy; {{.Year}} Starbyte. All rights reserved.</p>
        <p style="margin:6px 0;">
          <a href="{{.BaseURL}}/privacy" style="color:{{.Brand}}; text-decoration:none;">Privacy Policy</a> |
          <a href="{{.BaseURL}}/terms" style="color:{{.Brand}}; text-decoration:none;">Terms of Service</a> |
          <a href="{{.BaseURL}}/support" style="color:{{.Brand}}; text-decoration:none;">Support</a>
        </p>
      </div>
    </div>
  </div>
</div>`))

type receiptView struct {
	LogoSrc  template.URL
	BaseURL  string
	Brand    template.CSS
	Name     string
	OrderID  string
	To       string
	Date     string
	Total    string
	Year     int
	Products []receiptProductView
}

type receiptProductView struct {
	Title        string
	Description  string
	Instructions string
	ImageURL     string
	Price        string
	Code         string
	Link         string
}
