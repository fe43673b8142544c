package templates

// Form renders a multi-section form.  Section contents and dependent groups
// carry the hidden attribute while collapsed or not revealed.
const Form = `
{{ define "content" }}
			<div class="salesform">
				<div class="ui middle very relaxed page grid">
					<div class="column">
						<h2 class="ui header">{{ .Name }}</h2>
						{{ with .Description }}<p class="description">{{ . }}</p>{{ end }}
						<div id="form-messages" class="ui error message" {{ if not .ShowMessages }}hidden{{ end }}>
							<ul>
								{{ range .Messages }}<li>{{ . }}</li>{{ end }}
							</ul>
						</div>
						<form id="client-form" class="ui form" action="/" method="post" novalidate>
							<button type="submit" class="default-action" name="_action" value="submit" tabindex="-1" aria-hidden="true" style="position: absolute; left: -10000px;">Submit</button>
							{{ range $section := .Sections }}
							<div class="form-section" id="{{ $section.ID }}" data-index="{{ $section.Index }}">
								<h3 class="ui top attached header">
									<button type="submit" class="section-toggle" name="_toggle" value="{{ $section.Index }}" formnovalidate>{{ $section.Indicator }}</button>
									{{ $section.Title }}
								</h3>
								<div class="form-content ui attached segment" {{ if not $section.Expanded }}hidden{{ end }}>
									{{ with $section.Description }}<p class="description">{{ . }}</p>{{ end }}
									{{ range $block := $section.Blocks }}
									{{ if $block.Group }}<div id="{{ $block.Group }}" class="other-field" {{ if not $block.Visible }}hidden{{ end }}>{{ end }}
										{{ range $elem := $block.Elements }}
										<div class="form-group inline {{ if $elem.Required }}required{{ end }} field">
											{{ if eq $elem.Type "radio" }}
												<label>{{ $elem.Label }}</label>
												{{ range $idx, $opt := $elem.ValueList }}
												<div class="ui radio checkbox">
													<input type="radio" id="{{ $elem.ElementID }}-{{ $idx }}" name="{{ $elem.Name }}" value="{{ $opt }}" {{ if eq $opt $elem.Value }}checked{{ end }}>
													<label for="{{ $elem.ElementID }}-{{ $idx }}">{{ $opt }}</label>
												</div>
												{{ end }}
											{{ else if eq $elem.Type "select" }}
												<label for="{{ $elem.ElementID }}">{{ $elem.Label }}</label>
												<select id="{{ $elem.ElementID }}" name="{{ $elem.Name }}" {{ if $elem.Required }}required{{ end }}>
													<option value="">Select…</option>
													{{ range $opt := $elem.ValueList }}
													<option value="{{ $opt }}" {{ if eq $opt $elem.Value }}selected{{ end }}>{{ $opt }}</option>
													{{ end }}
												</select>
											{{ else if eq $elem.Type "checkbox" }}
												<div class="ui checkbox">
													<input type="checkbox" id="{{ $elem.ElementID }}" name="{{ $elem.Name }}" value="on" {{ if $elem.Value }}checked{{ end }} {{ if $elem.Required }}required{{ end }}>
													<label for="{{ $elem.ElementID }}">{{ $elem.Label }}</label>
												</div>
											{{ else if eq $elem.Type "textarea" }}
												<label for="{{ $elem.ElementID }}">{{ $elem.Label }}</label>
												<textarea id="{{ $elem.ElementID }}" name="{{ $elem.Name }}" {{ if $elem.Required }}required{{ end }}>{{ $elem.Value }}</textarea>
											{{ else }}
												<label for="{{ $elem.ElementID }}">{{ $elem.Label }}</label>
												<input type="{{ $elem.Type }}" id="{{ $elem.ElementID }}" name="{{ $elem.Name }}" value="{{ $elem.Value }}" {{ if $elem.Required }}required{{ end }} {{ if $elem.ValueList }}list="{{ $elem.ElementID }}-list"{{ end }}>
												{{ if $elem.ValueList }}
												<datalist id="{{ $elem.ElementID }}-list">
													{{ range $opt := $elem.ValueList }}<option value="{{ $opt }}">{{ end }}
												</datalist>
												{{ end }}
											{{ end }}
											{{ with $elem.DescriptionHTML }}<span class="help">{{ . }}</span>{{ end }}
										</div>
										{{ end }}
									{{ if $block.Group }}</div>{{ end }}
									{{ end }}
								</div>
							</div>
							{{ end }}
							<div class="inline field">
								<button class="ui button" name="_action" value="refresh" formnovalidate>Update</button>
								<button class="ui green button" name="_action" value="submit">Submit</button>
							</div>
						</form>
						{{ with .Result }}
						<dialog id="form-notice" open>
							<p>{{ .Notice }}</p>
							{{ template "summary" .Submitted }}
							<form method="dialog"><button class="ui button">OK</button></form>
						</dialog>
						{{ end }}
					</div>
				</div>
			</div>
{{ end }}
`
