package domain

import "time"

// Field is the canonical name of a raw export column.
type Field string

const (
	FieldRecordedAt     Field = "เวลาบันทึก"
	FieldSequence       Field = "ลำดับชุดข้อมูลที่"
	FieldDate           Field = "วันที่"
	FieldMachine        Field = "เครื่องทอ NO"
	FieldWorkerA        Field = "พนักงานทอ กะ A"
	FieldWorkerB        Field = "พนักงานทอ กะ B"
	FieldSizeCode       Field = "ขนาดหน้าผ้า_รหัส"
	FieldSizeCodeQual   Field = "ขนาดหน้าผ้า (รหัส)"
	FieldLotNo          Field = "Lot.No"
	FieldOrderNo        Field = "เลขที่ใบสั่งผลิต"
	FieldOutputA        Field = "ยอดทอ กะ A"
	FieldOutputB        Field = "ยอดทอ กะ B"
	FieldSpeedA         Field = "ความเร็วรอบ กะ A"
	FieldSpeedB         Field = "ความเร็วรอบ กะ B"
	FieldEfficiencyA    Field = "ประสิทธิภาพ กะ A"
	FieldEfficiencyB    Field = "ประสิทธิภาพ กะ B"
	FieldMeterStartA    Field = "มิเตอร์เริ่มงาน กะ A"
	FieldMeterEndA      Field = "มิเตอร์เลิกงาน กะ A"
	FieldMeterStartB    Field = "มิเตอร์เริ่มงาน กะ B"
	FieldMeterEndB      Field = "มิเตอร์เลิกงาน กะ B"
	FieldCutLengthA     Field = "ความยาวตัดม้วน กะ A"
	FieldCutLengthB     Field = "ความยาวตัดม้วน กะ B"
	FieldSupplementLot  Field = "ขนาด Lot.No"
)

// ShiftFields is the positional layout of a shift A/B export (21 columns).
var ShiftFields = []Field{
	FieldRecordedAt, FieldSequence, FieldDate, FieldMachine, FieldWorkerA, FieldWorkerB,
	FieldSizeCode, FieldLotNo, FieldOrderNo, FieldOutputA, FieldOutputB,
	FieldSpeedA, FieldSpeedB, FieldEfficiencyA, FieldEfficiencyB,
	FieldMeterStartA, FieldMeterEndA, FieldMeterStartB, FieldMeterEndB,
	FieldCutLengthA, FieldCutLengthB,
}

// SupplementFields is the positional layout of the optional re-cut export (8 columns).
var SupplementFields = []Field{
	FieldRecordedAt, FieldSequence, FieldDate, FieldMachine, FieldSizeCodeQual,
	FieldSupplementLot, FieldCutLengthA, FieldCutLengthB,
}

// RawRecord is one data row of an uploaded export after header detection.
// Machine and Date are lifted out of Values because every later stage keys on them.
type RawRecord struct {
	Machine string
	Date    time.Time
	Values  map[Field]string
}

// Get returns the raw cell text for f, or "" when the column is absent.
func (r RawRecord) Get(f Field) string {
	if r.Values == nil {
		return ""
	}
	return r.Values[f]
}

// Table is the normalized content of one uploaded file.
type Table struct {
	Source  string
	Fields  []Field
	Headers []string // header cells as found in the file, empty when no header row was detected
	Records []RawRecord
}

// Empty reports whether the table carries no records.
func (t *Table) Empty() bool {
	return t == nil || len(t.Records) == 0
}

// Has reports whether f is one of the table's columns.
func (t *Table) Has(f Field) bool {
	if t == nil {
		return false
	}
	for _, tf := range t.Fields {
		if tf == f {
			return true
		}
	}
	return false
}
