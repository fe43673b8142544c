package templates

// Layout is the main site template. It includes the header and footer and
// embeds the content for every other page.
var Layout = `
{{ define "layout" }}
<!DOCTYPE html>
<html>
	<head>
		<meta charset="utf-8">
		<meta name="viewport" content="width=device-width, initial-scale=1">
		<link rel="stylesheet" href="/assets/semantic-2.3.1.min.css">
		<link rel="stylesheet" href="/assets/custom.css">
		<title>Sales visits</title>
	</head>
	<body>
		<div class="full height">
			<div class="following bar light">
				<div class="ui container">
					<div class="ui top secondary menu">
						<a class="item brand" href="/">Sales visits</a>
						<a class="item" href="/">New client</a>
					</div>
				</div>
			</div>
			{{ template "content" . }}
		</div>
		<footer>
			<div class="ui container">
				<div class="ui center links item brand footertext">
					Submissions are simulated. No data leaves this page.
				</div>
			</div>
		</footer>
	</body>
</html>
{{ end }}
`
