package transport

import "strings"

// Carrier is whoever moves the produce: a hired transporter or the farmer's own vehicle.
// Every field is optional.
type Carrier struct {
	name          string
	phone         string
	vehicleNumber string
	vehicleType   string
	licenseNumber string
}

// NewCarrier creates a Carrier with trimmed fields.
func NewCarrier(name, phone, vehicleNumber, vehicleType, licenseNumber string) Carrier {
	return Carrier{
		name:          strings.TrimSpace(name),
		phone:         strings.TrimSpace(phone),
		vehicleNumber: strings.ToUpper(strings.TrimSpace(vehicleNumber)),
		vehicleType:   strings.TrimSpace(vehicleType),
		licenseNumber: strings.TrimSpace(licenseNumber),
	}
}

func (c Carrier) Name() string          { return c.name }
func (c Carrier) Phone() string         { return c.phone }
func (c Carrier) VehicleNumber() string { return c.vehicleNumber }
func (c Carrier) VehicleType() string   { return c.vehicleType }
func (c Carrier) LicenseNumber() string { return c.licenseNumber }
