package theme

// StyleCSS is the stylesheet served at /assets/style.css.
const StyleCSS = `*,*::before,*::after{box-sizing:border-box}
body{margin:0;font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,sans-serif;color:#1f2937;background:#fff;line-height:1.6}
a{color:#2563eb;text-decoration:none}
a:hover{text-decoration:underline}
ul{list-style:none;padding:0;margin:0}
blockquote{border-left:4px solid #e5e7eb;margin:1rem 0;padding:.5rem 1rem;color:#4b5563}
pre{overflow-x:auto;padding:1rem;border-radius:.375rem}

.hidden{display:none}
.flex{display:flex}
.flex-col{flex-direction:column}
.flex-row-reverse{flex-direction:row-reverse}
.flex-wrap{flex-wrap:wrap}
.justify-between{justify-content:space-between}
.justify-center{justify-content:center}
.items-center{align-items:center}
.gap-2{gap:.5rem}
.gap-4{gap:1rem}
.relative{position:relative}
.fixed{position:fixed}
.sticky{position:sticky}
.top-0{top:0}
.left-0{left:0}
.right-0{right:0}
.bottom-0{bottom:0}
.bottom-52{bottom:13rem}
.z-20{z-index:20}
.z-30{z-index:30}
.z-40{z-index:40}
.w-full{width:100%}
.w-72{width:18rem}
.h-12{height:3rem}
.h-96{height:24rem}
.h-full{height:100%}
.min-h-screen{min-height:100vh}
.max-w-3xl{max-width:48rem}
.mx-auto{margin-left:auto;margin-right:auto}
.mb-2{margin-bottom:.5rem}
.mb-4{margin-bottom:1rem}
.mr-2{margin-right:.5rem}
.my-3{margin-top:.75rem;margin-bottom:.75rem}
.p-4{padding:1rem}
.px-1{padding-left:.25rem;padding-right:.25rem}
.px-6{padding-left:1.5rem;padding-right:1.5rem}
.py-4{padding-top:1rem;padding-bottom:1rem}
.py-6{padding-top:1.5rem;padding-bottom:1.5rem}
.py-20{padding-top:5rem;padding-bottom:5rem}
.pt-6{padding-top:1.5rem}
.pt-12{padding-top:3rem}
.text-3xl{font-size:1.875rem;line-height:2.25rem}
.text-sm{font-size:.875rem}
.text-center{text-align:center}
.text-gray-500{color:#6b7280}
.text-red-500{color:#ef4444}
.font-bold{font-weight:700}
.rounded-md{border-radius:.375rem}

#top-nav{background:#fff;border-bottom:1px solid #e5e7eb}
#wrapper{padding-top:3rem}
#left-panel{border-right:1px solid #e5e7eb}
#left-panel>.sticky{padding:3.5rem 1.5rem;height:100vh;overflow-y:auto}
#center-wrapper{min-height:100vh}
#container-inner{padding:0 1.75rem}
#right-panel{width:32rem}
#right-panel>.sticky{padding:3.5rem 1.5rem}
#search-input input{width:100%;padding:.5rem;border:1px solid #e5e7eb;border-radius:.375rem}
.nav-entry{display:block;padding:.25rem .5rem;border-radius:.25rem;color:#374151}
.nav-entry.active{background:#eff6ff;color:#2563eb}
.catalog li[data-level="3"]{padding-left:1rem}
.catalog li[data-level="4"]{padding-left:2rem}
.category-item,.tag-item-mini,.count-chip{display:inline-block;padding:.125rem .5rem;border-radius:.25rem;background:#f3f4f6;margin-right:.25rem}
.count-chip .count{margin-left:.375rem;color:#6b7280}
.tag-blue{background:#dbeafe}.tag-green{background:#dcfce7}.tag-yellow{background:#fef9c3}
.tag-red{background:#fee2e2}.tag-purple{background:#f3e8ff}.tag-pink{background:#fce7f3}
.tag-gray{background:#f3f4f6}.tag-orange{background:#ffedd5}.tag-brown{background:#efe4dc}
#float-toc-button{background:#fff;border:1px solid #e5e7eb;padding:.5rem}
#jump-to-top{position:fixed;right:1rem;bottom:1rem}
.drawer{left:0;width:80%;max-width:20rem;background:#fff;padding:1rem;overflow-y:auto;box-shadow:0 0 1rem rgba(0,0,0,.2);transition:transform .3s ease-in-out}
#toc-drawer{left:auto;right:0}
.drawer-closed{transform:translateX(-110%)}
#toc-drawer.drawer-closed{transform:translateX(110%)}
.drawer-close{float:right;font-size:1.5rem}

.transition{transition-property:opacity,transform}
.ease-in-out{transition-timing-function:cubic-bezier(.4,0,.2,1)}
.duration-300{transition-duration:.3s}
.duration-700{transition-duration:.7s}
.opacity-0{opacity:0}
.opacity-100{opacity:1}
.translate-y-0{transform:translateY(0)}
.-translate-y-16{transform:translateY(-4rem)}
#content-transition[data-state="leave"]{pointer-events:none}

@media (min-width:768px){
.md\:block{display:block}
.md\:flex{display:flex}
.md\:hidden{display:none}
}
@media (min-width:1280px){
.xl\:block{display:block}
}
`

// ScriptJS is the client script served at /assets/script.js. It opens the
// drawers without a page load and follows the site loading flag over the
// live websocket.
const ScriptJS = `(function () {
  var enter = "` + transitionEnter + `";
  var leave = "` + transitionLeave + `";

  function setDrawer(name, open) {
    var el = document.querySelector('[data-drawer="' + name + '"]');
    if (!el) return false;
    el.setAttribute("data-state", open ? "open" : "closed");
    el.classList.toggle("drawer-closed", !open);
    var btn = document.getElementById("float-toc-button");
    if (name === "toc" && btn) btn.style.display = open ? "none" : "";
    return true;
  }

  document.addEventListener("click", function (ev) {
    var t = ev.target.closest("[data-toggle]");
    if (!t) return;
    var name = t.getAttribute("data-toggle");
    var el = document.querySelector('[data-drawer="' + name + '"]');
    if (!el) return;
    ev.preventDefault();
    setDrawer(name, el.getAttribute("data-state") !== "open");
  });

  function setLoading(loading) {
    var el = document.getElementById("content-transition");
    if (!el) return;
    el.setAttribute("data-state", loading ? "leave" : "enter");
    el.className = loading ? leave : enter;
  }

  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws;
    try {
      ws = new WebSocket(proto + location.host + "/ws/live");
    } catch (e) {
      return;
    }
    ws.onmessage = function (ev) {
      try {
        var msg = JSON.parse(ev.data);
        if (typeof msg.loading === "boolean") setLoading(msg.loading);
      } catch (e) {}
    };
    ws.onclose = function () { setTimeout(connect, 3000); };
  }
  if (document.querySelector("[data-live]")) connect();
})();
`
