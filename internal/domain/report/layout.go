// Package report arma el informe para el veterinario de un registro de
// enfermedad y lo renderiza a PDF.
//
// Build es puro: dado el mismo Input y el mismo reloj produce el mismo
// Document. El render vive en pdf.go.
package report

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"
)

const (
	Title      = "Preliminary Diagnosis and Treatment Report for Veterinarian"
	Disclaimer = "Note: This is an AI-generated preliminary diagnosis. Please consult a veterinarian for accurate diagnosis and treatment."

	ImageCaption = "ภาพประกอบ: / Accompanying Image:"
	ImageFailed  = "ไม่สามารถแสดงรูปภาพได้ใน PDF (อาจเกิดจากขนาดหรือรูปแบบไฟล์) / Image could not be displayed in PDF (due to size or format)."

	NotSpecified = "Not specified"
	NoThai       = "No Thai diagnosis provided."
	NoEnglish    = "No English diagnosis provided."
)

// Columns (mm desde el borde izquierdo).
const (
	XLabel   = 10.0
	XText    = 20.0
	XSection = 30.0
)

type Kind int

const (
	KindTitle Kind = iota
	// KindLine es una línea simple, sin corte.
	KindLine
	// KindParagraph se corta por palabras al ancho disponible.
	KindParagraph
	KindImage
	// KindGap agrega espacio vertical (Height mm).
	KindGap
)

type Block struct {
	Kind   Kind
	Text   string
	X      float64
	Height float64

	Image     []byte
	ImageType string // "PNG" o "JPG"
}

type Document struct {
	FileName    string
	GeneratedAt time.Time
	Blocks      []Block
}

// Input son los datos de la mascota y del registro que van al informe.
// Image es base64 (con o sin prefijo data:).
type Input struct {
	PetName string
	HN      string
	Species string
	Breed   string
	Sex     string
	OwnerID string

	Symptoms         string
	Temperature      string
	HeartRate        string
	RespiratoryRate  string
	BloodPressure    string
	OxygenSaturation string

	Diagnosis string
	Treatment string
	Image     string
}

// Build arma el layout fijo. Nunca falla: los campos opcionales ausentes se
// omiten o llevan un texto por defecto.
func Build(in Input, now time.Time) Document {
	d := Document{
		FileName:    FileName(in.PetName, now),
		GeneratedAt: now,
	}
	add := func(b Block) { d.Blocks = append(d.Blocks, b) }
	line := func(x float64, s string) { add(Block{Kind: KindLine, X: x, Text: s}) }
	para := func(x float64, s string) { add(Block{Kind: KindParagraph, X: x, Text: s}) }
	gap := func(h float64) { add(Block{Kind: KindGap, Height: h}) }

	add(Block{Kind: KindTitle, Text: Title})
	gap(3)
	line(XLabel, "Date: "+now.Format("1/2/2006"))
	line(XLabel, "Time: "+now.Format("3:04:05 PM"))
	gap(3)
	line(XLabel, "Pet Name: "+in.PetName+" (HN: "+in.HN+")")
	line(XLabel, "Species: "+in.Species+", Breed: "+in.Breed+", Sex: "+in.Sex)
	line(XLabel, "Owner: "+in.OwnerID)
	gap(7)

	if strings.TrimSpace(in.Image) != "" {
		if data, typ, ok := decodeImage(in.Image); ok {
			add(Block{Kind: KindImage, X: XLabel, Height: 50, Image: data, ImageType: typ})
			line(XLabel, ImageCaption)
		} else {
			line(XLabel, ImageFailed)
		}
		gap(5)
	}

	line(XLabel, "Observed Symptoms:")
	para(XText, in.Symptoms)
	gap(5)

	line(XLabel, "Temperature: "+orDefault(in.Temperature, NotSpecified))
	if v := strings.TrimSpace(in.HeartRate); v != "" {
		line(XLabel, "Heart Rate: "+v+" bpm")
	}
	if v := strings.TrimSpace(in.RespiratoryRate); v != "" {
		line(XLabel, "Respiratory Rate: "+v+" breaths/min")
	}
	if v := strings.TrimSpace(in.BloodPressure); v != "" {
		line(XLabel, "Blood Pressure: "+v+" mmHg")
	}
	if v := strings.TrimSpace(in.OxygenSaturation); v != "" {
		line(XLabel, "Oxygen Saturation: "+v+" %")
	}
	gap(10)

	thai, english := SplitDiagnosis(in.Diagnosis)
	line(XLabel, "Preliminary Diagnosis (from AI):")
	line(XText, "Thai:")
	para(XSection, thai)
	gap(3)
	line(XText, "English:")
	para(XSection, english)
	gap(5)

	line(XLabel, "Treatment:")
	para(XText, orDefault(in.Treatment, NotSpecified))
	gap(10)

	para(XLabel, Disclaimer)
	return d
}

// SplitDiagnosis separa el texto del asistente en sus secciones "Thai:" y
// "English:". La sección Thai termina en el primer "\nEnglish:" o al final.
func SplitDiagnosis(text string) (thai, english string) {
	thai, english = NoThai, NoEnglish

	if i := strings.Index(text, "Thai:"); i >= 0 {
		rest := text[i+len("Thai:"):]
		if j := strings.Index(rest, "\nEnglish:"); j >= 0 {
			rest = rest[:j]
		}
		if s := strings.TrimSpace(rest); s != "" {
			thai = s
		}
	}
	if i := strings.Index(text, "English:"); i >= 0 {
		if s := strings.TrimSpace(text[i+len("English:"):]); s != "" {
			english = s
		}
	}
	return thai, english
}

// FileName es IllnessReport_{nombre}_{YYYY-MM-DD}.pdf con la fecha en UTC.
func FileName(petName string, now time.Time) string {
	return "IllnessReport_" + petName + "_" + now.UTC().Format("2006-01-02") + ".pdf"
}

func decodeImage(s string) ([]byte, string, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if _, after, ok := strings.Cut(s, ","); ok {
			s = after
		}
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, "", false
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", false
	}
	switch format {
	case "png":
		return data, "PNG", true
	case "jpeg":
		return data, "JPG", true
	default:
		return nil, "", false
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
