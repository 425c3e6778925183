package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Console API",
        "description": "Administration console for master data, exams, scheduling, marks and printable documents",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Seeded admin login"},
        {"name": "MasterData", "description": "Classes, sections, subjects and demographic pools"},
        {"name": "Exams", "description": "Terms and exam definitions"},
        {"name": "CoScholastic", "description": "Co-scholastic areas and assignments"},
        {"name": "Schedules", "description": "Exam timetables"},
        {"name": "Marks", "description": "Score ledger"},
        {"name": "Admissions", "description": "Student admission and CSV import"},
        {"name": "Students", "description": "Student roster"},
        {"name": "Reports", "description": "Report cards, admit cards and exports"},
        {"name": "Sessions", "description": "Academic sessions"},
        {"name": "Settings", "description": "Admission-ID settings and school profile"},
        {"name": "System", "description": "Operational endpoints"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate administrator",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Access token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current administrator",
                "responses": {
                    "200": {"description": "Identity", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/master": {
            "get": {
                "tags": ["MasterData"],
                "summary": "Full master data snapshot",
                "responses": {"200": {"description": "Snapshot", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/master/{kind}": {
            "get": {
                "tags": ["MasterData"],
                "summary": "List one pool",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string", "enum": ["classes", "sections", "subjects", "categories", "religions", "castes"]}
                ],
                "responses": {"200": {"description": "Items"}, "400": {"description": "Unknown pool"}}
            },
            "post": {
                "tags": ["MasterData"],
                "summary": "Add a value to a pool",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"value": {"type": "string"}}}}
                ],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Duplicate value"}}
            }
        },
        "/master/{kind}/{value}": {
            "delete": {
                "tags": ["MasterData"],
                "summary": "Remove a value from a pool",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"},
                    {"name": "value", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"204": {"description": "Removed"}, "404": {"description": "Not found"}}
            }
        },
        "/classes/{class}/subjects": {
            "get": {
                "tags": ["MasterData"],
                "summary": "Subject assignment for a class",
                "parameters": [{"name": "class", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Assignments"}, "404": {"description": "Class not found"}}
            },
            "put": {
                "tags": ["MasterData"],
                "summary": "Replace the subject assignment for a class",
                "parameters": [
                    {"name": "class", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "Replaced"}, "400": {"description": "Validation error"}}
            }
        },
        "/classes/{class}/sections": {
            "get": {
                "tags": ["MasterData"],
                "summary": "Effective section list for a class",
                "parameters": [{"name": "class", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Sections"}, "404": {"description": "Class not found"}}
            },
            "put": {
                "tags": ["MasterData"],
                "summary": "Replace the section override for a class",
                "description": "An empty list clears the override so the class uses the global pool",
                "parameters": [
                    {"name": "class", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "Replaced"}}
            }
        },
        "/classes/{class}/co-scholastic-areas": {
            "post": {
                "tags": ["CoScholastic"],
                "summary": "Assign co-scholastic areas to a class",
                "parameters": [
                    {"name": "class", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"areas": {"type": "array", "items": {"type": "string"}}}}}
                ],
                "responses": {"200": {"description": "Areas added"}, "409": {"description": "All areas already assigned"}}
            }
        },
        "/exams/terms": {
            "get": {
                "tags": ["Exams"],
                "summary": "List exam terms",
                "responses": {"200": {"description": "Terms"}}
            },
            "post": {
                "tags": ["Exams"],
                "summary": "Create an exam term",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"name": {"type": "string"}}}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Duplicate term"}}
            }
        },
        "/exams/terms/{term}": {
            "delete": {
                "tags": ["Exams"],
                "summary": "Delete an exam term",
                "description": "Cascades the term's exam list and co-scholastic assignment; the last term is protected",
                "parameters": [{"name": "term", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}, "412": {"description": "Last term"}}
            }
        },
        "/exams/terms/{term}/exams": {
            "get": {
                "tags": ["Exams"],
                "summary": "List exam definitions of a term",
                "parameters": [{"name": "term", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Exams"}, "404": {"description": "Term not found"}}
            }
        },
        "/exams/terms/{term}/exams/{exam}": {
            "delete": {
                "tags": ["Exams"],
                "summary": "Delete an exam definition",
                "parameters": [
                    {"name": "term", "in": "path", "required": true, "type": "string"},
                    {"name": "exam", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found"}}
            }
        },
        "/exams": {
            "put": {
                "tags": ["Exams"],
                "summary": "Create or edit an exam definition",
                "description": "original_name identifies the exam being edited; empty means create",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertExamRequest"}}],
                "responses": {"200": {"description": "Saved"}, "409": {"description": "Name conflict"}}
            }
        },
        "/co-scholastic/areas": {
            "post": {
                "tags": ["CoScholastic"],
                "summary": "Create a co-scholastic area",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"name": {"type": "string"}}}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Duplicate area"}}
            }
        },
        "/co-scholastic/areas/{area}": {
            "delete": {
                "tags": ["CoScholastic"],
                "summary": "Delete a co-scholastic area",
                "description": "Cascades out of every class and term assignment; the last area is protected",
                "parameters": [{"name": "area", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}, "412": {"description": "Last area"}}
            }
        },
        "/co-scholastic/areas/{area}/subjects": {
            "post": {
                "tags": ["CoScholastic"],
                "summary": "Add a graded sub-subject to an area",
                "parameters": [
                    {"name": "area", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"name": {"type": "string"}}}}
                ],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Duplicate subject"}}
            }
        },
        "/exams/terms/{term}/areas/{area}": {
            "put": {
                "tags": ["CoScholastic"],
                "summary": "Assign an area to a term",
                "parameters": [
                    {"name": "term", "in": "path", "required": true, "type": "string"},
                    {"name": "area", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"204": {"description": "Assigned"}}
            },
            "delete": {
                "tags": ["CoScholastic"],
                "summary": "Unassign an area from a term",
                "parameters": [
                    {"name": "term", "in": "path", "required": true, "type": "string"},
                    {"name": "area", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"204": {"description": "Unassigned"}}
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List stored exam schedules",
                "responses": {"200": {"description": "Schedules"}}
            },
            "post": {
                "tags": ["Schedules"],
                "summary": "Save a schedule",
                "description": "Rows without a date are dropped; a save with zero dated rows is rejected",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "Saved"}, "400": {"description": "Validation error"}}
            }
        },
        "/schedules/draft": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Editable draft for a class/term/exam selection",
                "parameters": [
                    {"name": "class", "in": "query", "required": true, "type": "string"},
                    {"name": "term", "in": "query", "required": true, "type": "string"},
                    {"name": "exam", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "Draft"}, "404": {"description": "Exam not found"}}
            }
        },
        "/schedules/{id}": {
            "delete": {
                "tags": ["Schedules"],
                "summary": "Delete a stored schedule",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found"}}
            }
        },
        "/marks": {
            "put": {
                "tags": ["Marks"],
                "summary": "Write one score cell",
                "description": "Last write wins; a value above the exam maximum produces a warning, not an error",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "Saved"}, "404": {"description": "Student not found"}}
            }
        },
        "/marks/grid": {
            "get": {
                "tags": ["Marks"],
                "summary": "Marks-entry grid",
                "parameters": [
                    {"name": "class", "in": "query", "required": true, "type": "string"},
                    {"name": "section", "in": "query", "type": "string"},
                    {"name": "term", "in": "query", "required": true, "type": "string"},
                    {"name": "exam", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "Grid"}, "404": {"description": "Exam not found"}}
            }
        },
        "/admissions": {
            "post": {
                "tags": ["Admissions"],
                "summary": "Admit a student",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Student created"}, "409": {"description": "Admission ID in use"}}
            }
        },
        "/admissions/preview-id": {
            "get": {
                "tags": ["Admissions"],
                "summary": "Preview the next admission ID",
                "parameters": [
                    {"name": "class", "in": "query", "type": "string"},
                    {"name": "section", "in": "query", "type": "string"},
                    {"name": "admission_date", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "ID preview"}}
            }
        },
        "/admissions/import": {
            "post": {
                "tags": ["Admissions"],
                "summary": "Bulk-import students from CSV",
                "consumes": ["multipart/form-data"],
                "parameters": [{"name": "file", "in": "formData", "required": true, "type": "file"}],
                "responses": {"200": {"description": "Import result"}, "400": {"description": "Unreadable file"}}
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "class", "in": "query", "type": "string"},
                    {"name": "section", "in": "query", "type": "string"},
                    {"name": "session", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "Students"}}
            }
        },
        "/students/export.csv": {
            "get": {
                "tags": ["Students"],
                "summary": "Export every student as CSV",
                "produces": ["text/csv"],
                "responses": {"200": {"description": "CSV file"}}
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get one student",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Student"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Students"],
                "summary": "Edit a student record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "Updated"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete a student",
                "description": "The confirmation field must repeat the student's admission ID",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"confirmation": {"type": "string"}}}}
                ],
                "responses": {"204": {"description": "Deleted"}, "400": {"description": "Confirmation mismatch"}}
            }
        },
        "/students/{id}/marks": {
            "get": {
                "tags": ["Marks"],
                "summary": "Student scores for one term",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "term", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "Scores"}, "404": {"description": "Student not found"}}
            }
        },
        "/students/{id}/summary": {
            "get": {
                "tags": ["Students"],
                "summary": "Generated profile summary",
                "description": "Degrades to a fixed fallback text when the generation endpoint is unavailable",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Summary"}, "404": {"description": "Student not found"}}
            }
        },
        "/students/{id}/report-card": {
            "get": {
                "tags": ["Reports"],
                "summary": "Report card view model",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "term", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "Report card"}, "404": {"description": "Not found"}}
            }
        },
        "/students/{id}/report-card/pdf": {
            "get": {
                "tags": ["Reports"],
                "summary": "Report card as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "term", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "PDF file"}, "404": {"description": "Not found"}}
            }
        },
        "/admit-cards": {
            "post": {
                "tags": ["Reports"],
                "summary": "Admit card view models",
                "description": "An empty student_ids list selects every student of the class",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "Cards"}, "404": {"description": "No schedule or no students"}}
            }
        },
        "/admit-cards/pdf": {
            "post": {
                "tags": ["Reports"],
                "summary": "Admit cards as PDF, one page per student",
                "produces": ["application/pdf"],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "PDF file"}, "404": {"description": "No schedule or no students"}}
            }
        },
        "/reports/class-marks.csv": {
            "get": {
                "tags": ["Reports"],
                "summary": "Class marks for one exam as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "class", "in": "query", "required": true, "type": "string"},
                    {"name": "term", "in": "query", "required": true, "type": "string"},
                    {"name": "exam", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "CSV file"}, "404": {"description": "Exam not found"}}
            }
        },
        "/reports/class-marks.pdf": {
            "get": {
                "tags": ["Reports"],
                "summary": "Class marks for one exam as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "class", "in": "query", "required": true, "type": "string"},
                    {"name": "term", "in": "query", "required": true, "type": "string"},
                    {"name": "exam", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "PDF file"}, "404": {"description": "Exam not found"}}
            }
        },
        "/sessions": {
            "get": {
                "tags": ["Sessions"],
                "summary": "List academic sessions",
                "responses": {"200": {"description": "Sessions"}}
            },
            "post": {
                "tags": ["Sessions"],
                "summary": "Create a session",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"name": {"type": "string"}}}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Duplicate session"}}
            }
        },
        "/sessions/{id}": {
            "put": {
                "tags": ["Sessions"],
                "summary": "Rename a session",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"name": {"type": "string"}}}}
                ],
                "responses": {"200": {"description": "Renamed"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Sessions"],
                "summary": "Delete a session",
                "description": "The current session, the last remaining session and sessions with admitted students are protected",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}, "412": {"description": "Protected session"}}
            }
        },
        "/sessions/{id}/current": {
            "put": {
                "tags": ["Sessions"],
                "summary": "Mark a session as current",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Marked current"}, "404": {"description": "Not found"}}
            }
        },
        "/settings": {
            "get": {
                "tags": ["Settings"],
                "summary": "Current admission-ID settings",
                "responses": {"200": {"description": "Settings"}}
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Replace the admission-ID settings",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "Saved"}, "400": {"description": "Validation error"}}
            }
        },
        "/settings/preview-id": {
            "post": {
                "tags": ["Settings"],
                "summary": "Preview an admission ID with proposed settings",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "ID preview"}}
            }
        },
        "/profile": {
            "get": {
                "tags": ["Settings"],
                "summary": "School profile",
                "responses": {"200": {"description": "Profile"}}
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Replace the school profile",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "Saved"}}
            }
        },
        "/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Aggregated runtime metrics",
                "responses": {"200": {"description": "Metrics snapshot"}}
            }
        },
        "/system/factory-reset": {
            "post": {
                "tags": ["System"],
                "summary": "Reset every snapshot to seeded defaults",
                "description": "The confirmation field must be the word RESET",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"confirmation": {"type": "string"}}}}],
                "responses": {"204": {"description": "Reset complete"}, "400": {"description": "Confirmation mismatch"}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "UpsertExamRequest": {
            "type": "object",
            "required": ["term", "name", "max_marks"],
            "properties": {
                "term": {"type": "string"},
                "original_name": {"type": "string"},
                "name": {"type": "string"},
                "max_marks": {"type": "integer"},
                "subjects": {"type": "array", "items": {"type": "string"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
