package soap

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Fault is a SOAP fault returned by the server. It is used as an error.
//
// The fields are normalized across SOAP versions: for SOAP 1.1 Code is faultcode and Reason is
// faultstring; for SOAP 1.2 Code is Code/Value, Subcode is Code/Subcode/Value and Reason is the
// first Reason/Text.
type Fault struct {
	Version    Version
	Code       string
	Subcode    string
	Reason     string
	Actor      string
	Detail     []byte
	HTTPStatus int
}

func (f *Fault) Error() string {
	code := f.Code
	if f.Subcode != "" {
		code += "/" + f.Subcode
	}
	return fmt.Sprintf("SOAP fault %s: %s", code, f.Reason)
}

// HasDetail returns true if the fault included a non-empty detail element.
func (f *Fault) HasDetail() bool {
	return strings.TrimSpace(string(f.Detail)) != ""
}

// DecodeDetail decodes the children of the fault's detail element into a struct whose fields
// are tagged with the child element names.
func (f *Fault) DecodeDetail(target interface{}) error {
	data := make([]byte, 0, len(f.Detail)+len("<detail></detail>"))
	data = append(data, "<detail>"...)
	data = append(data, f.Detail...)
	data = append(data, "</detail>"...)
	return xml.Unmarshal(data, target)
}

// CodeLocalName returns the fault code without its namespace prefix, such as "Server" for
// "soap:Server".
func (f *Fault) CodeLocalName() string {
	if pos := strings.LastIndex(f.Code, ":"); pos >= 0 {
		return f.Code[pos+1:]
	}
	return f.Code
}

type innerXML struct {
	Content []byte `xml:",innerxml"`
}

type fault11 struct {
	Code   string    `xml:"faultcode"`
	String string    `xml:"faultstring"`
	Actor  string    `xml:"faultactor"`
	Detail *innerXML `xml:"detail"`
}

type fault12 struct {
	Code struct {
		Value   string `xml:"Value"`
		Subcode struct {
			Value string `xml:"Value"`
		} `xml:"Subcode"`
	} `xml:"Code"`
	Reason struct {
		Text []string `xml:"Text"`
	} `xml:"Reason"`
	Role   string    `xml:"Role"`
	Detail *innerXML `xml:"Detail"`
}

func decodeFault(d *xml.Decoder, start *xml.StartElement, version Version, result *ValidationResult) (*Fault, error) {
	f := &Fault{Version: version}
	if version == Version12 {
		var raw fault12
		if err := d.DecodeElement(&raw, start); err != nil {
			return nil, err
		}
		f.Code = strings.TrimSpace(raw.Code.Value)
		f.Subcode = strings.TrimSpace(raw.Code.Subcode.Value)
		if len(raw.Reason.Text) > 0 {
			f.Reason = strings.TrimSpace(raw.Reason.Text[0])
		}
		f.Actor = raw.Role
		if raw.Detail != nil {
			f.Detail = raw.Detail.Content
		}
		result.Require("Fault/Code/Value", f.Code)
		if len(raw.Reason.Text) == 0 {
			result.Errorf("Fault/Reason/Text is required")
		}
		return f, nil
	}
	var raw fault11
	if err := d.DecodeElement(&raw, start); err != nil {
		return nil, err
	}
	f.Code = strings.TrimSpace(raw.Code)
	f.Reason = strings.TrimSpace(raw.String)
	f.Actor = raw.Actor
	if raw.Detail != nil {
		f.Detail = raw.Detail.Content
	}
	result.Require("Fault/faultcode", f.Code)
	result.Require("Fault/faultstring", f.Reason)
	return f, nil
}
