package pbexport

// exportStyle is the default print stylesheet applied to every exported
// document.
const exportStyle = `
body {
  font-family: Georgia, 'Times New Roman', serif;
  font-size: 11pt;
  line-height: 1.5;
  color: #1a1a1a;
}
h1 {
  font-size: 20pt;
  border-bottom: 2px solid #1a1a1a;
  padding-bottom: 6px;
}
h2 {
  font-size: 15pt;
  margin-top: 20pt;
  page-break-after: avoid;
}
h3 {
  font-size: 12pt;
  page-break-after: avoid;
}
table {
  border-collapse: collapse;
  width: 100%;
  margin: 10pt 0;
}
th, td {
  border: 1px solid #999;
  padding: 5pt 8pt;
  text-align: left;
}
blockquote {
  margin: 10pt 0;
  padding: 4pt 12pt;
  border-left: 3px solid #999;
  color: #444;
}
pre {
  background: #f5f5f5;
  padding: 8pt;
  overflow-x: hidden;
  white-space: pre-wrap;
  page-break-inside: avoid;
}
hr {
  border: none;
  border-top: 1px solid #ccc;
  margin: 16pt 0;
}
`
