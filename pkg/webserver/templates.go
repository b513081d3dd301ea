package webserver

import "html/template"

type dashboardData struct {
	Year int
	Race string
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>F1 Strategy Dashboard</title>
<style>
body { font-family: sans-serif; margin: 1.5rem; background: #fafafa; color: #222; }
h1 { font-size: 1.4rem; }
form { margin-bottom: 1rem; }
input { padding: 0.25rem; }
.chart { margin: 1rem 0; }
.chart img { max-width: 100%; border: 1px solid #ddd; background: #fff; }
#banner { display: none; padding: 0.5rem 1rem; background: #ffe9a8; border: 1px solid #e0c060; }
</style>
</head>
<body>
<h1>F1 Strategy Dashboard</h1>
<div id="banner">New results are available. Reload to refresh the charts.</div>
<form method="get" action="/">
  <label>Race <input name="race" value="{{.Race}}"></label>
  <button type="submit">Load</button>
</form>
<div class="chart">
  <img src="/charts/laptimes.svg?year={{.Year}}&amp;race={{.Race}}" alt="Lap times">
</div>
<div class="chart">
  <img src="/charts/gridfinish.svg?year={{.Year}}&amp;race={{.Race}}" alt="Grid vs finish">
</div>
<div class="chart">
  <img src="/charts/teamweather.svg?year={{.Year}}&amp;race={{.Race}}" alt="Team pace by conditions">
</div>
<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.event === "refresh") {
      document.getElementById("banner").style.display = "block";
    }
  };
})();
</script>
</body>
</html>
`
