package http

import (
	"net/http"
)

// frontendHTML is the embedded HTML for the map page. Leaflet from CDN,
// no build step.
const frontendHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Lamina</title>
    <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
    <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
    <style>
        :root {
            --primary: #2563eb;
            --error: #dc2626;
            --bg: #f8fafc;
            --card: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
            --radius: 8px;
            --shadow: 0 1px 3px rgba(0,0,0,0.15);
        }

        * {
            box-sizing: border-box;
            margin: 0;
            padding: 0;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            height: 100vh;
            display: flex;
            flex-direction: column;
        }

        header {
            display: flex;
            align-items: center;
            gap: 0.75rem;
            padding: 0.5rem 1rem;
            background: var(--card);
            border-bottom: 1px solid var(--border);
            flex-wrap: wrap;
        }

        header h1 {
            font-size: 1.1rem;
            font-weight: 600;
            color: var(--primary);
            margin-right: auto;
        }

        .btn {
            display: inline-block;
            padding: 0.4rem 0.75rem;
            font-size: 0.85rem;
            font-weight: 500;
            border: 1px solid var(--border);
            border-radius: var(--radius);
            background: var(--card);
            color: var(--text);
            cursor: pointer;
            box-shadow: var(--shadow);
        }

        .btn:hover { border-color: var(--primary); color: var(--primary); }
        .btn.danger:hover { border-color: var(--error); color: var(--error); }

        input[type=file] { display: none; }

        #map { flex: 1; }

        #notice {
            position: absolute;
            bottom: 1.5rem;
            left: 50%;
            transform: translateX(-50%);
            z-index: 1000;
            background: var(--card);
            border: 1px solid var(--border);
            border-radius: var(--radius);
            box-shadow: var(--shadow);
            padding: 0.6rem 1rem;
            font-size: 0.85rem;
            display: none;
        }

        #notice.error { color: var(--error); border-color: var(--error); }

        .photo-popup img {
            max-width: 220px;
            max-height: 160px;
            display: block;
            margin-top: 0.35rem;
            border-radius: 4px;
        }

        .popup-name { font-weight: 600; font-size: 0.85rem; }
        .popup-meta { color: var(--text-muted); font-size: 0.75rem; }
    </style>
</head>
<body>
    <header>
        <h1>Lamina</h1>
        <label class="btn" for="boundaries-input">Load boundaries</label>
        <input type="file" id="boundaries-input" multiple accept=".kmz">
        <label class="btn" for="tracks-input">Load tracks</label>
        <input type="file" id="tracks-input" multiple accept=".kml,.gpx">
        <label class="btn" for="photos-input">Load photos</label>
        <input type="file" id="photos-input" multiple accept="image/*">
        <button class="btn danger" id="clear-btn">Clear</button>
    </header>

    <div id="map"></div>
    <div id="notice"></div>

    <script>
        const map = L.map('map');
        const layers = {
            boundaries: L.featureGroup().addTo(map),
            tracks: L.featureGroup().addTo(map),
            photos: L.featureGroup().addTo(map),
        };

        const styles = {
            boundary: { color: '#2563eb', weight: 2, fillOpacity: 0.08 },
            track: { color: '#dc2626', weight: 3 },
        };

        async function loadBasemaps() {
            const resp = await fetch('/api/v1/basemaps');
            const catalog = await resp.json();
            const control = {};
            for (const bm of catalog.basemaps) {
                const layer = L.tileLayer(bm.url, {
                    attribution: bm.attribution,
                    maxZoom: bm.max_zoom,
                });
                control[bm.name] = layer;
                if (bm.default) layer.addTo(map);
            }
            L.control.layers(control, {
                'Boundaries': layers.boundaries,
                'Tracks': layers.tracks,
                'Photos': layers.photos,
            }).addTo(map);
        }

        function showNotice(text, isError) {
            const el = document.getElementById('notice');
            el.textContent = text;
            el.className = isError ? 'error' : '';
            el.style.display = 'block';
            clearTimeout(el._timer);
            el._timer = setTimeout(() => { el.style.display = 'none'; }, 5000);
        }

        function renderOverlay(group, overlay, style) {
            L.geoJSON(overlay.collection, {
                style: style,
                onEachFeature: (feature, layer) => {
                    const name = (feature.properties && feature.properties.name) || overlay.name;
                    layer.bindPopup('<div class="popup-name">' + name + '</div>');
                },
            }).addTo(group);
        }

        function renderPhoto(photo) {
            const marker = L.marker([photo.lat, photo.lon]);
            let html = '<div class="photo-popup"><div class="popup-name">' + photo.name + '</div>';
            if (photo.taken_at) {
                html += '<div class="popup-meta">' + photo.taken_at + '</div>';
            }
            html += '<img src="' + photo.image_url + '" alt="' + photo.name + '"></div>';
            marker.bindPopup(html);
            marker.addTo(layers.photos);
        }

        async function refreshState() {
            const resp = await fetch('/api/v1/state');
            const state = await resp.json();

            Object.values(layers).forEach(g => g.clearLayers());
            state.boundaries.forEach(o => renderOverlay(layers.boundaries, o, styles.boundary));
            state.tracks.forEach(o => renderOverlay(layers.tracks, o, styles.track));
            state.photos.forEach(renderPhoto);

            map.setView([state.viewport.center.lat, state.viewport.center.lon],
                state.viewport.default ? 11 : map.getZoom() || 11);
        }

        async function upload(endpoint, fileList) {
            const form = new FormData();
            for (const f of fileList) form.append('files', f);

            const resp = await fetch(endpoint, { method: 'POST', body: form });
            if (!resp.ok) {
                const body = await resp.json().catch(() => ({}));
                showNotice(body.message || 'Upload failed', true);
                return;
            }

            const report = await resp.json();
            if (report.no_geotagged_photos) {
                showNotice('No geotagged photos found', true);
            } else if (report.failed > 0) {
                showNotice(report.accepted + ' loaded, ' + report.failed + ' failed', true);
            } else {
                showNotice(report.accepted + ' file(s) loaded', false);
            }
            await refreshState();
        }

        function bindUpload(inputId, endpoint) {
            const input = document.getElementById(inputId);
            input.addEventListener('change', async () => {
                if (input.files.length > 0) await upload(endpoint, input.files);
                input.value = '';
            });
        }

        bindUpload('boundaries-input', '/api/v1/overlays/boundaries');
        bindUpload('tracks-input', '/api/v1/overlays/tracks');
        bindUpload('photos-input', '/api/v1/photos');

        document.getElementById('clear-btn').addEventListener('click', async () => {
            await fetch('/api/v1/state', { method: 'DELETE' });
            await refreshState();
        });

        loadBasemaps().then(refreshState);
    </script>
</body>
</html>`

// handleFrontend serves the embedded map page.
func (s *Server) handleFrontend(w http.ResponseWriter, r *http.Request) {
	// Only serve the frontend at the exact root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write([]byte(frontendHTML))
}
