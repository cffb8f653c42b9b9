package leaflet

// pageTemplate is the whole document. The script block is a JS translation
// of the overlay state machine in pkg/overlay; the two must stay in step.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Path Map</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/leaflet@1.9.4/dist/leaflet.css"/>
<link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/4.7.0/css/font-awesome.min.css"/>
<link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/Leaflet.awesome-markers/2.0.2/leaflet.awesome-markers.css"/>
<script src="https://cdn.jsdelivr.net/npm/leaflet@1.9.4/dist/leaflet.js"></script>
<script src="https://cdnjs.cloudflare.com/ajax/libs/Leaflet.awesome-markers/2.0.2/leaflet.awesome-markers.js"></script>
<style>
  html, body { margin: 0; padding: 0; height: 100%; }
  #map { position: absolute; top: 0; bottom: 0; left: 0; right: 0; }
  #searchContainer {
    position: absolute;
    top: 10px;
    right: 10px;
    z-index: 1000;
    background: white;
    padding: 8px;
    border-radius: 4px;
    box-shadow: 0 2px 6px rgba(0,0,0,0.3);
    max-height: 260px;
    width: 260px;
    overflow: hidden;
    font-size: 12px;
  }
  #nodeSearch {
    width: 100%;
    box-sizing: border-box;
    padding: 4px 6px;
    margin-bottom: 4px;
    border: 1px solid #ccc;
    border-radius: 3px;
  }
  #searchResults {
    max-height: 210px;
    overflow-y: auto;
  }
  .search-result {
    padding: 3px 4px;
    cursor: pointer;
    border-radius: 3px;
    border-bottom: 1px solid #eee;
  }
  .search-result:hover {
    background: #f0f0f0;
  }
  #offlineContainer {
    position: absolute;
    bottom: 30px;
    left: 10px;
    z-index: 1000;
    background: white;
    padding: 10px;
    border-radius: 4px;
    box-shadow: 0 2px 6px rgba(0,0,0,0.3);
    max-height: 300px;
    width: 280px;
    overflow: hidden;
    font-size: 12px;
  }
  #offlineContainer h4 {
    margin: 0 0 8px 0;
    font-size: 13px;
    font-weight: bold;
    color: #d32f2f;
  }
  #offlineList {
    max-height: 300px;
    overflow-y: auto;
  }
  .offline-item {
    padding: 6px 8px;
    cursor: pointer;
    border-radius: 3px;
    border-bottom: 1px solid #eee;
    margin-bottom: 2px;
  }
  .offline-item:hover {
    background: #ffebee;
  }
  .offline-name {
    font-weight: 500;
    color: #333;
  }
  .offline-id {
    font-size: 11px;
    color: #666;
    margin-top: 2px;
  }
  #legend {
    position: absolute;
    bottom: 30px;
    right: 10px;
    z-index: 1000;
    background: white;
    padding: 10px;
    border-radius: 4px;
    box-shadow: 0 2px 6px rgba(0,0,0,0.3);
    font-size: 12px;
    line-height: 1.6;
  }
  #legend h4 {
    margin: 0 0 8px 0;
    font-size: 13px;
    font-weight: bold;
  }
  .legend-item {
    display: flex;
    align-items: center;
    margin-bottom: 4px;
  }
  .legend-icon {
    width: 20px;
    height: 20px;
    margin-right: 8px;
    border-radius: 2px;
    display: inline-flex;
    align-items: center;
    justify-content: center;
    font-size: 10px;
    color: white;
  }
  .legend-icon.purple { background-color: #cf51b6; }
  .legend-icon.pink { background-color: #ff91e8; }
  .legend-icon.blue { background-color: #38a9dc; }
  .legend-icon.green { background-color: #71af26; }
</style>
</head>
<body>
<div id="map"></div>

<div id="searchContainer">
  <input id="nodeSearch" type="text"
         placeholder="Search by ID, name, location" />
  <div id="searchResults"></div>
</div>

<div id="offlineContainer">
  <h4>Offline Nodes</h4>
  <div id="offlineList"></div>
</div>

<div id="legend">
  <h4>Legend</h4>
  <div class="legend-item">
    <div class="legend-icon purple"><i class="fa fa-cloud"></i></div>
    <span>Gateways</span>
  </div>
  <div class="legend-item">
    <div class="legend-icon pink"><i class="fa fa-exchange"></i></div>
    <span>Repeaters</span>
  </div>
  <div class="legend-item">
    <div class="legend-icon blue"><i class="fa fa-tint"></i></div>
    <span>Water Tanks</span>
  </div>
  <div class="legend-item">
    <div class="legend-icon green"><i class="fa fa-tint"></i></div>
    <span>Stream Sensors</span>
  </div>
</div>

<script>
document.addEventListener('DOMContentLoaded', function() {
  var devices = {{.Devices}};
  var edges = {{.Links}};
  var offlineNodes = {{.Offline}};
  var offlineNodeIds = {{.OfflineIDs}};
  var showMarkers = {{.ShowMarkers}};

  var {{.MapName}} = L.map("map", {
    preferCanvas: true,
    zoomControl: true
  }).setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
  var mapObj = {{.MapName}};

  L.tileLayer("https://tile.openstreetmap.org/{z}/{x}/{y}.png", {
    maxZoom: 19,
    attribution: "&copy; OpenStreetMap contributors"
  }).addTo(mapObj);
  L.control.scale().addTo(mapObj);

  var offlineNodeIdsSet = new Set();
  offlineNodeIds.forEach(function(id) {
    offlineNodeIdsSet.add(id.toUpperCase());
  });

  var edgesByNode = {};
  var allEdges = [];
  var maxEdgeCount = 0;

  edges.forEach(function(e) {
    if (typeof e.count === "number" && e.count > maxEdgeCount) {
      maxEdgeCount = e.count;
    }
  });
  if (maxEdgeCount < 1) { maxEdgeCount = 1; }

  function weightForCount(c) {
    c = c || 1;
    if (maxEdgeCount <= 1) { return 2; }
    return 1 + 4 * (Math.log(1 + c) / Math.log(1 + maxEdgeCount));
  }

  function buildLabel(d) {
    var name = d.DeviceName || d.ID;
    var loc = d.Location || "";
    if (loc) {
      return name + " &mdash; " + loc + "<br>ID: " + d.ID;
    }
    return name + "<br>ID: " + d.ID;
  }

  function markerStyle(type, isOffline) {
    var t = (type || "").toLowerCase();
    if (t.indexOf("gate") !== -1) { return { icon: "cloud", color: isOffline ? "red" : "purple" }; }
    if (t.indexOf("rep") !== -1) { return { icon: "exchange", color: isOffline ? "red" : "pink" }; }
    if (t.indexOf("tank") !== -1) { return { icon: "tint", color: isOffline ? "red" : "blue" }; }
    if (t.indexOf("stream") !== -1) { return { icon: "tint", color: isOffline ? "red" : "green" }; }
    return { icon: "circle", color: isOffline ? "red" : "gray" };
  }

  // Edge lines
  edges.forEach(function(e) {
    var w = weightForCount(e.count);
    var isOfflineEdge = offlineNodeIdsSet.has(e.frm) || offlineNodeIdsSet.has(e.to);

    var line = L.polyline(
      [[e.lat_from, e.lon_from], [e.lat_to, e.lon_to]],
      {
        color: "#3388ff",
        weight: w,
        opacity: isOfflineEdge ? 0 : 0.5
      }
    );
    line.baseWeight = w;
    line.isOfflineEdge = isOfflineEdge;
    allEdges.push(line);
    if (!edgesByNode[e.frm]) { edgesByNode[e.frm] = []; }
    if (!edgesByNode[e.to]) { edgesByNode[e.to] = []; }
    edgesByNode[e.frm].push(line);
    edgesByNode[e.to].push(line);
    line.addTo(mapObj);
  });

  // Device markers
  if (showMarkers) {
    devices.forEach(function(d) {
      var isOffline = offlineNodeIdsSet.has(d.ID_upper);
      var style = markerStyle(d.Type, isOffline);
      var marker = L.marker([d.Latitude, d.Longitude], {
        icon: L.AwesomeMarkers.icon({
          icon: style.icon,
          markerColor: style.color,
          prefix: "fa"
        })
      });
      marker.bindTooltip(buildLabel(d));
      marker.on("click", function() {
        highlightDevice(d.ID_upper);
      });
      marker.addTo(mapObj);
    });
  }

  var selectedId = null;

  function resetHighlight() {
    allEdges.forEach(function(line) {
      var defaultOpacity = line.isOfflineEdge ? 0 : 0.5;
      line.setStyle({
        color: "#3388ff",
        opacity: defaultOpacity,
        weight: line.baseWeight
      });
    });
    selectedId = null;
  }

  function highlightDevice(idUpper) {
    if (selectedId === idUpper) {
      resetHighlight();
      return;
    }

    resetHighlight();
    selectedId = idUpper;
    var lines = edgesByNode[idUpper] || [];
    lines.forEach(function(line) {
      // Offline suppression wins over the highlight.
      if (line.isOfflineEdge) { return; }
      line.setStyle({
        color: "#000000",
        opacity: 0.9
      });
    });
  }

  function focusOnDevice(idUpper) {
    var device = null;
    for (var i = 0; i < devices.length; i++) {
      if (devices[i].ID_upper === idUpper) {
        device = devices[i];
        break;
      }
    }
    if (device) {
      // Zoom in to at least 13, never out.
      mapObj.setView([device.Latitude, device.Longitude], Math.max(mapObj.getZoom(), 13));
      highlightDevice(idUpper);
    }
  }

  // Search
  var searchInput = document.getElementById("nodeSearch");
  var resultsDiv = document.getElementById("searchResults");

  function renderResults(matches) {
    resultsDiv.innerHTML = "";
    matches.slice(0, 50).forEach(function(d) {
      var div = document.createElement("div");
      div.className = "search-result";
      div.innerHTML = buildLabel(d);
      div.onclick = function() {
        focusOnDevice(d.ID_upper);
      };
      resultsDiv.appendChild(div);
    });
  }

  function filterDevices(query) {
    var q = (query || "").trim().toLowerCase();
    if (!q) {
      resultsDiv.innerHTML = "";
      resetHighlight();
      return;
    }

    var matches = [];
    devices.forEach(function(d) {
      var haystack = (d.ID + " " +
                      (d.DeviceName || "") + " " +
                      (d.Location || "")).toLowerCase();
      if (haystack.indexOf(q) !== -1) {
        matches.push(d);
      }
    });
    renderResults(matches);
  }

  searchInput.addEventListener("input", function() {
    filterDevices(this.value);
  });

  // Offline node panel
  var offlineListDiv = document.getElementById("offlineList");

  function renderOfflineNodes() {
    offlineListDiv.innerHTML = "";

    if (!offlineNodes || offlineNodes.length === 0) {
      offlineListDiv.innerHTML = "<div style='color: #999; padding: 4px;'>No offline nodes</div>";
      return;
    }

    offlineNodes.forEach(function(node) {
      var div = document.createElement("div");
      div.className = "offline-item";

      var nameDiv = document.createElement("div");
      nameDiv.className = "offline-name";
      nameDiv.textContent = node.name;

      var idDiv = document.createElement("div");
      idDiv.className = "offline-id";
      idDiv.textContent = "Node ID: " + node.id;

      div.appendChild(nameDiv);
      div.appendChild(idDiv);

      div.onclick = function() {
        focusOnDevice(node.id.toUpperCase().trim());
      };

      offlineListDiv.appendChild(div);
    });
  }

  renderOfflineNodes();
});
</script>
</body>
</html>
`
