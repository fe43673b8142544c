package templates

// Summary lists the label and value of every field of a simulated
// submission.
const Summary = `
{{ define "summary" }}
	<table id="submitted-values" class="ui unstackable fixed single line table">
		<tbody>
			{{ range $entry := . }}
				<tr>
					<td class="name text bold six wide">{{ $entry.Label }}</td>
					<td class="name ten wide">{{ $entry.Value }}</td>
				</tr>
			{{ end }}
		</tbody>
	</table>
{{ end }}
`

// vim: ft=gohtmltmpl
