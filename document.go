package formulas

import (
	"io"

	"github.com/beevik/etree"
)

// Document renders the formula and its evaluation tree as XML:
//
//	<Formula expression="2*(1-4)" result="-6">
//	  <Operator data="*" expression="2*(-3)" result="-6">
//	    <Operand data="2"/>
//	    <Operator data="-" expression="1-4" result="-3">
//	      <Operand data="1"/>
//	      <Operand data="4"/>
//	    </Operator>
//	  </Operator>
//	</Formula>
//
// Numbers are written with the formula's decimal separator and as many digits
// as needed to read back exactly.
func (f *Formula) Document() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("Formula")
	root.CreateAttr("expression", f.expr)
	root.CreateAttr("result", f.loc.FormatFloat(f.result))
	if f.root != nil {
		f.element(root, f.root)
	}
	doc.Indent(2)
	return doc
}

func (f *Formula) element(parent *etree.Element, n Node) {
	switch n := n.(type) {
	case *OperandNode:
		e := parent.CreateElement("Operand")
		e.CreateAttr("data", f.loc.FormatFloat(n.v))
	case *OperatorNode:
		r, _ := n.Result()
		e := parent.CreateElement("Operator")
		e.CreateAttr("data", n.String())
		e.CreateAttr("expression", f.Annotate(n))
		e.CreateAttr("result", f.loc.FormatFloat(r))
		f.element(e, n.left)
		f.element(e, n.right)
	default:
		panic("formulas: unknown node type")
	}
}

// WriteXML writes the formula's document to w.
func (f *Formula) WriteXML(w io.Writer) (int64, error) {
	return f.Document().WriteTo(w)
}
