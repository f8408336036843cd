package dashboard

import "net/http"

func (d *Dashboard) serveFrontend(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(frontendHTML))
}

const frontendHTML = `<!DOCTYPE html>
<html lang="en"><head>
<meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>ChainWatchdog</title>
<link href="https://fonts.googleapis.com/css2?family=JetBrains+Mono:wght@300;400;500;600;700&family=Space+Grotesk:wght@400;500;600;700&display=swap" rel="stylesheet">
<style>
:root{--bg:#08090d;--sf:#0f1118;--sf2:#161923;--bd:#252a3a;--tx:#c8cdd8;--tx2:#8891a5;--tx3:#5a6278;--ac:#3b82f6;--gn:#10b981;--rd:#ef4444;--or:#f59e0b;--pr:#a855f7}
*{margin:0;padding:0;box-sizing:border-box}
body{font-family:'JetBrains Mono',monospace;background:var(--bg);color:var(--tx);min-height:100vh}
.app{max-width:1100px;margin:0 auto;padding:20px 24px}
.hdr{display:flex;justify-content:space-between;align-items:center;padding:16px 0;border-bottom:1px solid var(--bd);margin-bottom:24px}
.hdr h1{font-family:'Space Grotesk',sans-serif;font-size:22px;font-weight:700;background:linear-gradient(135deg,var(--ac),var(--pr));-webkit-background-clip:text;-webkit-text-fill-color:transparent}
.sts{display:grid;grid-template-columns:repeat(auto-fit,minmax(130px,1fr));gap:12px;margin-bottom:24px}
.st{background:var(--sf);border:1px solid var(--bd);border-radius:10px;padding:15px 16px}
.st .v{font-size:24px;font-weight:700}.st .v.b{color:var(--ac)}.st .v.g{color:var(--gn)}.st .v.r{color:var(--rd)}.st .v.o{color:var(--or)}
.st .l{font-size:9px;color:var(--tx3);text-transform:uppercase;letter-spacing:.8px;margin-top:5px}
.pn{background:var(--sf);border:1px solid var(--bd);border-radius:12px;margin-bottom:18px;overflow:hidden}
.pn-h{padding:13px 18px;border-bottom:1px solid var(--bd);background:var(--sf2)}
.pn-h h2{font-family:'Space Grotesk',sans-serif;font-size:13px;font-weight:600}
.pn-b{padding:16px 18px}
.frm{display:flex;gap:8px;flex-wrap:wrap}
input,select{font-family:'JetBrains Mono',monospace;font-size:12px;background:var(--sf2);border:1px solid var(--bd);border-radius:8px;color:var(--tx);padding:10px 12px}
input{flex:1;min-width:320px}
button{font-family:'JetBrains Mono',monospace;font-size:12px;padding:10px 20px;border:none;border-radius:8px;background:var(--ac);color:#fff;cursor:pointer}
button:hover{opacity:.9}
#result{white-space:pre-wrap;font-size:13px;line-height:1.6;display:none}
#result.cat-SPAM,#result.cat-HONEYPOT,#result.cat-HIGH_RISK{border-left:3px solid var(--rd)}
#result.cat-MEDIUM_RISK{border-left:3px solid var(--or)}
#result.cat-LOW_RISK,#result.cat-SAFE{border-left:3px solid var(--gn)}
#result.cat-ERROR{border-left:3px solid var(--pr)}
table{width:100%;border-collapse:collapse}
th{text-align:left;font-size:9px;color:var(--tx3);text-transform:uppercase;letter-spacing:.8px;padding:10px 14px;border-bottom:1px solid var(--bd)}
td{padding:10px 14px;border-bottom:1px solid rgba(37,42,58,.4);font-size:12px}
.addr{color:#eab308;font-size:11px;letter-spacing:.3px}
.bg{display:inline-block;padding:2px 8px;border-radius:5px;font-size:9px;font-weight:600}
.bg-bad{background:rgba(239,68,68,.15);color:#f87171}
.bg-warn{background:rgba(245,158,11,.15);color:#fbbf24}
.bg-ok{background:rgba(16,185,129,.15);color:#34d399}
.bg-err{background:rgba(168,85,247,.15);color:#c084fc}
</style></head><body>
<div class="app">
<div class="hdr"><h1>🐾 ChainWatchdog</h1></div>
<div class="sts" id="stats"></div>
<div class="pn"><div class="pn-h"><h2>Analyze Address</h2></div><div class="pn-b">
<div class="frm">
<input id="address" placeholder="0x... or Solana address">
<select id="chain">
<option value="auto">auto-detect</option>
<option value="ethereum">Ethereum</option><option value="bsc">BSC</option>
<option value="polygon">Polygon</option><option value="avalanche">Avalanche</option>
<option value="arbitrum">Arbitrum</option><option value="optimism">Optimism</option>
<option value="gnosis">Gnosis</option><option value="base">Base</option>
<option value="solana">Solana</option>
</select>
<select id="intent">
<option value="honeypot-check">Honeypot check</option>
<option value="token-spam-check">Token spam check</option>
<option value="wallet">Wallet scan</option>
</select>
<button onclick="analyze()">Scan</button>
</div>
<div id="result" class="pn-b"></div>
</div></div>
<div class="pn"><div class="pn-h"><h2>Recent Scans</h2></div><div class="pn-b" style="padding:0">
<table><thead><tr><th>Address</th><th>Chain</th><th>Intent</th><th>Verdict</th><th>When</th></tr></thead>
<tbody id="history"></tbody></table>
</div></div>
</div>
<script>
const badge=c=>{
  if(['SPAM','HONEYPOT','HIGH_RISK'].includes(c))return'bg-bad';
  if(c==='MEDIUM_RISK')return'bg-warn';
  if(c==='ERROR')return'bg-err';
  return'bg-ok';
};
async function analyze(){
  const r=document.getElementById('result');
  r.style.display='block';r.className='pn-b';r.textContent='scanning...';
  try{
    const resp=await fetch('/api/analyze',{method:'POST',headers:{'Content-Type':'application/json'},
      body:JSON.stringify({address:document.getElementById('address').value.trim(),
        chain:document.getElementById('chain').value,
        intent:document.getElementById('intent').value})});
    if(!resp.ok){r.textContent='error: '+await resp.text();return}
    const v=await resp.json();
    r.className='pn-b cat-'+v.category;
    r.textContent=v.summary;
    loadHistory();loadStats();
  }catch(e){r.textContent='request failed: '+e}
}
async function loadStats(){
  const s=await (await fetch('/api/stats')).json();
  const by=s.by_category||{};
  document.getElementById('stats').innerHTML=
    '<div class="st"><div class="v b">'+s.total_scans+'</div><div class="l">Total scans</div></div>'+
    '<div class="st"><div class="v r">'+((by.SPAM||0)+(by.HONEYPOT||0))+'</div><div class="l">Spam + honeypots</div></div>'+
    '<div class="st"><div class="v o">'+((by.HIGH_RISK||0)+(by.MEDIUM_RISK||0))+'</div><div class="l">Risky</div></div>'+
    '<div class="st"><div class="v g">'+((by.SAFE||0)+(by.LOW_RISK||0))+'</div><div class="l">Clean</div></div>'+
    '<div class="st"><div class="v b">'+s.unique_wallets+'</div><div class="l">Wallets scanned</div></div>';
}
async function loadHistory(){
  const scans=await (await fetch('/api/history?limit=25')).json();
  document.getElementById('history').innerHTML=scans.map(s=>
    '<tr><td class="addr">'+s.address+'</td><td>'+s.chain+'</td><td>'+s.intent+
    '</td><td><span class="bg '+badge(s.category)+'">'+s.category+'</span></td><td>'+
    new Date(s.created_at).toLocaleString()+'</td></tr>').join('');
}
loadStats();loadHistory();setInterval(()=>{loadStats();loadHistory()},30000);
</script>
</body></html>`
