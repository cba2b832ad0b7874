package soap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

const xmlDeclaration = `<?xml version="1.0" encoding="utf-8"?>`

// MarshalEnvelope builds a complete request envelope. Each header value is marshaled as one
// child of the Header element; the header is omitted if there are none.
func MarshalEnvelope(version Version, headers []interface{}, body interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlDeclaration)
	fmt.Fprintf(&buf, `<soap:Envelope xmlns:soap="%s" xmlns:xsi="%s" xmlns:xsd="%s">`,
		version.Namespace(), xsiNamespace, xsdNamespace)
	if len(headers) > 0 {
		buf.WriteString("<soap:Header>")
		for _, h := range headers {
			data, err := xml.Marshal(h)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal SOAP header: %w", err)
			}
			buf.Write(data)
		}
		buf.WriteString("</soap:Header>")
	}
	buf.WriteString("<soap:Body>")
	data, err := xml.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal SOAP body: %w", err)
	}
	buf.Write(data)
	buf.WriteString("</soap:Body></soap:Envelope>")
	return buf.Bytes(), nil
}

// responseTarget describes where to put the decoded parts of a response envelope.
type responseTarget struct {
	// headers maps the local name of a header element to the value to decode it into. Header
	// elements with other names are ignored.
	headers map[string]interface{}

	// body receives the payload element.
	body interface{}

	// bodyName is the expected payload element. An empty Space matches any namespace.
	bodyName xml.Name
}

// decodeEnvelope walks a response envelope with a single decoder, so that namespace prefixes
// declared on the Envelope element stay in scope for the payload.
//
// Problems with the envelope's shape are recorded in the ValidationResult. The returned error is
// non-nil only if the document is not well-formed or the payload cannot be decoded at all.
func decodeEnvelope(data []byte, version Version, target responseTarget) (*Fault, ValidationResult, error) {
	var result ValidationResult
	d := xml.NewDecoder(bytes.NewReader(data))

	envelope, err := nextStartElement(d)
	if err != nil {
		result.Errorf("response is not a well-formed XML document: %s", err)
		return nil, result, err
	}
	if envelope.Name.Local != "Envelope" {
		result.Errorf("root element is %s, not Envelope", envelope.Name.Local)
		return nil, result, fmt.Errorf("response is not a SOAP envelope (root element %q)", envelope.Name.Local)
	}
	if envelope.Name.Space != version.Namespace() {
		result.Errorf("Envelope namespace is %q but %s requires %q",
			envelope.Name.Space, version, version.Namespace())
	}

	var fault *Fault
	sawBody := false
	for {
		tok, err := d.Token()
		if err != nil {
			result.Errorf("response is not a well-formed XML document: %s", err)
			return nil, result, err
		}
		if _, ok := tok.(xml.EndElement); ok {
			break // end of Envelope
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch {
		case start.Name.Local == "Header" && !sawBody:
			if err := decodeHeader(d, target.headers); err != nil {
				result.Errorf("could not decode SOAP header: %s", err)
				return nil, result, err
			}
		case start.Name.Local == "Body" && !sawBody:
			sawBody = true
			fault, err = decodeBody(d, version, target, &result)
			if err != nil {
				return nil, result, err
			}
		default:
			result.Errorf("unexpected element %s in Envelope", start.Name.Local)
			if err := d.Skip(); err != nil {
				return nil, result, err
			}
		}
	}
	if !sawBody {
		result.Errorf("Envelope has no Body element")
		return nil, result, errors.New("SOAP response has no Body")
	}
	if _, err := nextStartElement(d); err != io.EOF {
		result.Errorf("unexpected content after the Envelope element")
	}
	return fault, result, nil
}

func decodeHeader(d *xml.Decoder, targets map[string]interface{}) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.EndElement:
			return nil
		case xml.StartElement:
			if target, ok := targets[t.Name.Local]; ok {
				if err := d.DecodeElement(target, &t); err != nil {
					return err
				}
			} else if err := d.Skip(); err != nil {
				return err
			}
		}
	}
}

func decodeBody(d *xml.Decoder, version Version, target responseTarget, result *ValidationResult) (*Fault, error) {
	var fault *Fault
	count := 0
	for {
		tok, err := d.Token()
		if err != nil {
			result.Errorf("response is not a well-formed XML document: %s", err)
			return nil, err
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if count == 0 {
				result.Errorf("Body is empty")
			}
			return fault, nil
		case xml.StartElement:
			count++
			if count > 1 {
				result.Errorf("Body contains more than one element (extra element %s)", t.Name.Local)
				if err := d.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			if t.Name.Local == "Fault" && (t.Name.Space == Namespace11 || t.Name.Space == Namespace12) {
				if t.Name.Space != version.Namespace() {
					result.Errorf("Fault element is in namespace %q, expected %q", t.Name.Space, version.Namespace())
				}
				fault, err = decodeFault(d, &t, version, result)
				if err != nil {
					result.Errorf("could not decode SOAP fault: %s", err)
					return nil, err
				}
				continue
			}
			if target.bodyName.Local != "" && (t.Name.Local != target.bodyName.Local ||
				(target.bodyName.Space != "" && t.Name.Space != target.bodyName.Space)) {
				result.Errorf("Body element is {%s}%s, expected {%s}%s",
					t.Name.Space, t.Name.Local, target.bodyName.Space, target.bodyName.Local)
			}
			if target.body == nil {
				if err := d.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			if err := d.DecodeElement(target.body, &t); err != nil {
				result.Errorf("could not decode %s: %s", t.Name.Local, err)
				return nil, err
			}
			result.Validate(target.body)
		}
	}
}

func nextStartElement(d *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := d.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start, nil
		}
	}
}
