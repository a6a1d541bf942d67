// Package document implements the typed repositories over the narrow
// document-store surface, mapping raw documents to domain entities.
package document

import (
	"time"

	"github.com/agora/backend/domain"
	"github.com/agora/backend/internal/docstore"
)

func decodeEvent(doc docstore.Document) domain.Event {
	date, ok := doc.Time("date")
	if !ok {
		date = time.Now()
	}
	return domain.Event{
		ID:          doc.ID(),
		Name:        doc.Str("name"),
		Description: doc.Str("description"),
		Place:       doc.Str("place"),
		Date:        date,
		Creator:     doc.Ref("creator"),
		City:        doc.Ref("city"),
		Types:       doc.Refs("types"),
	}
}

func encodeEvent(event *domain.Event) map[string]interface{} {
	types := make([]interface{}, 0, len(event.Types))
	for _, ref := range event.Types {
		types = append(types, ref)
	}
	return map[string]interface{}{
		"name":        event.Name,
		"description": event.Description,
		"place":       event.Place,
		"date":        event.Date,
		"creator":     event.Creator,
		"city":        event.City,
		"types":       types,
	}
}

func decodeUser(doc docstore.Document) domain.User {
	return domain.User{
		ID:        doc.ID(),
		Firstname: doc.Str("firstname"),
		Lastname:  doc.Str("lastname"),
		Email:     doc.Str("email"),
		Cities:    doc.Refs("cities"),
		IsAdmin:   doc.Bool("isAdmin"),
	}
}

func encodeUser(user *domain.User) map[string]interface{} {
	cities := make([]interface{}, 0, len(user.Cities))
	for _, ref := range user.Cities {
		cities = append(cities, ref)
	}
	return map[string]interface{}{
		"firstname": user.Firstname,
		"lastname":  user.Lastname,
		"email":     user.Email,
		"cities":    cities,
		"isAdmin":   user.IsAdmin,
	}
}

func decodePayment(doc docstore.Document) domain.Payment {
	return domain.Payment{
		ID:     doc.ID(),
		Amount: doc.Float("amount"),
		User:   doc.Ref("user"),
		Event:  doc.Ref("event"),
	}
}

func decodePhoto(doc docstore.Document) domain.Photo {
	return domain.Photo{
		ID:      doc.ID(),
		Event:   doc.Ref("event"),
		FileURL: doc.Str("file_url"),
	}
}

func cityRefs(cityIDs []string) []interface{} {
	refs := make([]interface{}, 0, len(cityIDs))
	for _, id := range cityIDs {
		refs = append(refs, docstore.NewRef(docstore.CollectionCity, id))
	}
	return refs
}
