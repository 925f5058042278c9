// Package report desenha as fichas de seguimento e o registro de asistencia
// em PDF e XLSX, e arquiva os arquivos gerados.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/BruksfildServices01/therapy-scheduler/internal/dto"
)

// Branding é o cabeçalho institucional comum a todas as fichas.
type Branding struct {
	OrgName  string
	Subtitle string
	Logo     *Logo
}

type PDFRenderer struct {
	brand Branding
	loc   *time.Location
	now   func() time.Time
}

func NewPDFRenderer(brand Branding, loc *time.Location) *PDFRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return &PDFRenderer{brand: brand, loc: loc, now: time.Now}
}

// Medidas em pontos sobre papel carta.
const (
	marginX     = 40.0
	tableWidth  = 520.0
	headerTop   = 40.0
	headerH     = 80.0
	logoColW    = 90.0
	issuedColW  = 90.0
	bandH       = 20.0
	rowH        = 18.0
	bottomLimit = 740.0
)

var (
	bandFill  = [3]int{255, 243, 168}
	tableFill = [3]int{245, 245, 255}
)

type page struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (r *PDFRenderer) newDoc() *page {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(marginX, marginX, marginX)
	pdf.SetAutoPageBreak(false, marginX)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)

	p := &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(tableWidth-20, 760)
		pdf.CellFormat(60, 10, p.tr(fmt.Sprintf("Página %d", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	if r.brand.Logo != nil {
		r.brand.Logo.register(pdf)
	}
	return p
}

// header desenha o quadro: logo | organização + formato | expedido.
func (r *PDFRenderer) header(p *page) {
	pdf := p.pdf
	issued := r.now().In(r.loc)
	centerW := tableWidth - logoColW - issuedColW

	pdf.Rect(marginX, headerTop, tableWidth, headerH, "D")
	pdf.Line(marginX+logoColW, headerTop, marginX+logoColW, headerTop+headerH)
	pdf.Line(marginX+logoColW+centerW, headerTop, marginX+logoColW+centerW, headerTop+headerH)

	if r.brand.Logo != nil {
		r.brand.Logo.draw(pdf, marginX+15, headerTop+10, 60)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginX+logoColW, headerTop+8)
	pdf.CellFormat(centerW, 16, p.tr(r.brand.OrgName), "", 2, "C", false, 0, "")
	if r.brand.Subtitle != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(centerW, 12, p.tr(r.brand.Subtitle), "", 2, "C", false, 0, "")
	}
	pdf.Line(marginX+logoColW, headerTop+40, marginX+logoColW+centerW, headerTop+40)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginX+logoColW, headerTop+48)
	pdf.CellFormat(centerW, 14, "FORMATO REGISTRO DE ASISTENCIA", "", 0, "C", false, 0, "")

	ex := marginX + logoColW + centerW + 10
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(ex, headerTop+20, "Expedido:")
	pdf.Text(ex, headerTop+35, "Fecha: "+issued.Format("02/01/2006"))
	pdf.Text(ex, headerTop+50, "Hora: "+issued.Format("03:04 PM"))

	pdf.SetY(headerTop + headerH + 10)
}

func (r *PDFRenderer) band(p *page, text string) {
	pdf := p.pdf
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(bandFill[0], bandFill[1], bandFill[2])
	pdf.SetX(marginX)
	pdf.CellFormat(tableWidth, bandH, p.tr(text), "1", 1, "C", true, 0, "")
}

func (r *PDFRenderer) tableHead(p *page, cols []string, widths []float64) {
	pdf := p.pdf
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(tableFill[0], tableFill[1], tableFill[2])
	pdf.SetX(marginX)
	for i, c := range cols {
		pdf.CellFormat(widths[i], rowH, p.tr(c), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

// table escreve as linhas repetindo band+cabeçalho a cada página nova.
func (r *PDFRenderer) table(p *page, band string, cols []string, widths []float64, rows [][]string) {
	pdf := p.pdf
	r.tableHead(p, cols, widths)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		if pdf.GetY()+rowH > bottomLimit {
			pdf.AddPage()
			pdf.SetY(marginX)
			if band != "" {
				r.band(p, band)
			}
			r.tableHead(p, cols, widths)
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.SetX(marginX)
		for i, cell := range row {
			pdf.CellFormat(widths[i], rowH, p.tr(cell), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func (r *PDFRenderer) output(p *page) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ======================================================
// FICHAS
// ======================================================

var followUpCols = []string{"DOCUMENTO", "NOMBRE", "FECHA", "HORA", "ESTADO"}
var followUpWidths = []float64{90, 170, 90, 80, 90}

// FollowUp desenha a ficha semanal, mensal ou diária.
func (r *PDFRenderer) FollowUp(sheet *dto.FollowUpSheetDTO) ([]byte, error) {
	p := r.newDoc()
	p.pdf.AddPage()
	r.header(p)
	r.band(p, sheet.Title)

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		rows = append(rows, []string{row.Document, row.Name, row.Date, row.Time, row.Status})
	}
	r.table(p, "", followUpCols, followUpWidths, rows)

	return r.output(p)
}

// History desenha o registro de asistencia de um paciente num serviço.
func (r *PDFRenderer) History(sheet *dto.HistorySheetDTO) ([]byte, error) {
	p := r.newDoc()
	pdf := p.pdf
	pdf.AddPage()
	r.header(p)

	r.band(p, "1. REGISTRO DE ASISTENCIA")
	pdf.SetFont("Helvetica", "", 10)
	half := tableWidth / 2
	info := [][2]string{
		{"EMPRESA: " + r.brand.OrgName, "SERVICIO: " + sheet.ServiceLabel},
		{"PACIENTE: " + sheet.ClientName, "Documento de identidad: " + sheet.ClientID},
		{fmt.Sprintf("SESIONES: %d", sheet.Sessions), "FECHA DE INICIO: " + sheet.StartDate},
	}
	for _, line := range info {
		pdf.SetX(marginX)
		pdf.CellFormat(half, rowH+4, p.tr(line[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(half, rowH+4, p.tr(line[1]), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(20)
	r.band(p, "2. SEGUIMIENTO")

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		rows = append(rows, []string{row.Date, row.Time, row.Status})
	}
	r.table(p, "2. SEGUIMIENTO", []string{"FECHA", "HORA", "ESTADO"}, []float64{173, 173, 174}, rows)

	if pdf.GetY()+40 > bottomLimit {
		pdf.AddPage()
		pdf.SetY(marginX)
	}
	pdf.Ln(30)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(marginX)
	pdf.CellFormat(tableWidth, 14, "Firma del responsable: ______________________", "", 1, "L", false, 0, "")

	return r.output(p)
}
