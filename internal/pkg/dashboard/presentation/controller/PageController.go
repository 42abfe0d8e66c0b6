package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageController serves the single dashboard page. The page is self-contained:
// markup, styles and the socket client ship in one response so the binary
// needs no asset pipeline.
type PageController struct{}

func NewPageController() *PageController {
	return &PageController{}
}

func (ctl *PageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(dashboardPage))
	}
}

const dashboardPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>SalesShortcut</title>
<style>
  body { font-family: sans-serif; margin: 2rem; background: #f7f7f8; }
  h1 { font-size: 1.4rem; }
  form { display: inline-block; margin-right: 1rem; }
  table { border-collapse: collapse; width: 100%; margin-top: 1rem; background: #fff; }
  th, td { border: 1px solid #ddd; padding: .4rem .6rem; text-align: left; font-size: .9rem; }
  #status { margin-left: 1rem; color: #666; }
  #log { margin-top: 1rem; max-height: 12rem; overflow-y: auto; font-size: .8rem; color: #444; }
  .pill { padding: .1rem .5rem; border-radius: 1rem; background: #eef; }
</style>
</head>
<body>
<h1>SalesShortcut</h1>

<form method="post" action="/start_lead_finding">
  <input name="city" placeholder="City" required>
  <button type="submit">Find leads</button>
</form>
<form method="post" action="/trigger_lead_manager"><button type="submit">Check inbox</button></form>
<form method="post" action="/reset"><button type="submit">Reset</button></form>
<span id="status">connecting…</span>

<table>
  <thead><tr><th>Business</th><th>City</th><th>Phone</th><th>Email</th><th>Status</th><th></th></tr></thead>
  <tbody id="businesses"></tbody>
</table>

<div id="log"></div>

<script>
(function () {
  var status = document.getElementById('status');
  var tbody = document.getElementById('businesses');
  var log = document.getElementById('log');
  var attempts = 0;
  var delay = 1000;

  function note(text) {
    var line = document.createElement('div');
    line.textContent = new Date().toLocaleTimeString() + ' ' + text;
    log.prepend(line);
  }

  function row(biz) {
    var tr = document.getElementById('biz-' + biz.id) || document.createElement('tr');
    tr.id = 'biz-' + biz.id;
    tr.innerHTML = '<td>' + biz.name + '</td><td>' + biz.city + '</td><td>' +
      (biz.phone || '') + '</td><td>' + (biz.email || '') + '</td>' +
      '<td><span class="pill">' + biz.status + '</span></td>' +
      '<td><form method="post" action="/send_to_sdr">' +
      '<input type="hidden" name="business_id" value="' + biz.id + '">' +
      '<button type="submit">Send to SDR</button></form></td>';
    if (!tr.parentNode) tbody.appendChild(tr);
  }

  function dispatch(event) {
    switch (event.type) {
      case 'initial_state':
        tbody.innerHTML = '';
        (event.businesses || []).forEach(row);
        break;
      case 'business_added':
      case 'business_updated':
        if (event.business) row(event.business);
        break;
      case 'state_reset':
        tbody.innerHTML = '';
        break;
      case 'calendar_notification':
        var meeting = event.data || {};
        note('meeting booked' + (meeting.event_link ? ': ' + meeting.event_link : ''));
        break;
      case 'human_input_request':
        var answer = window.prompt(event.prompt);
        if (answer) {
          fetch('/api/human-input/' + event.request_id, {
            method: 'POST',
            headers: {'Content-Type': 'application/json'},
            body: JSON.stringify({response: answer})
          });
        }
        break;
    }
    note(event.type + (event.message ? ': ' + event.message : ''));
  }

  function connect() {
    var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    var ws = new WebSocket(proto + location.host + '/ws');

    ws.onopen = function () {
      attempts = 0;
      delay = 1000;
      status.textContent = 'live';
    };
    ws.onmessage = function (msg) {
      dispatch(JSON.parse(msg.data));
    };
    ws.onclose = function () {
      attempts += 1;
      if (attempts > 5) {
        status.textContent = 'disconnected (refresh to retry)';
        return;
      }
      status.textContent = 'reconnecting…';
      setTimeout(connect, delay);
      delay = Math.min(delay * 2, 10000);
    };
  }

  connect();
})();
</script>
</body>
</html>
`
