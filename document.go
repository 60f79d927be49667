package cgeltree

// DefaultDocumentHeader opens a standalone document for parsetree output.
// \NL{Abcd}{Xyz} yields a label with the function Abcd on top in sans serif,
// followed by a colon, and the category Xyz below.
const DefaultDocumentHeader = `
\documentclass[12pt]{standalone}
\usepackage{times}
\usepackage{parsetree}
\usepackage{textcomp}
\pagestyle{empty}
\newcommand{\NL}[2]{\begin{tabular}[t]{c}\small\textsf{#1:}\\
#2\end{tabular}}
\begin{document}
`

// DefaultDocumentFooter closes the document opened by DefaultDocumentHeader.
const DefaultDocumentFooter = `
\end{document}
`
